package access

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"peerperm/internal/domain/netperm"
	"peerperm/internal/netaddr"

	"github.com/google/uuid"
)

// Notifier is told about entry mutations so interested clients (e.g. the
// WebSocket event stream) can react.
type Notifier interface {
	NotifyEntriesChanged(kind string)
}

// Service implements the business logic for permission entry management.
type Service struct {
	repo     netperm.Repository
	notifier Notifier
}

// NewService creates a new access service
func NewService(repo netperm.Repository) *Service {
	return &Service{repo: repo}
}

// SetNotifier sets the change notifier for the service
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// AddBind parses and stores an address-bound permission spec.
func (s *Service) AddBind(ctx context.Context, req *netperm.BindCreateRequest) (*netperm.BindEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	bp, err := netperm.ParseBind(req.Spec)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &netperm.BindEntry{
		ID:          uuid.New().String(),
		Spec:        req.Spec,
		Flags:       bp.Flags,
		Permissions: bp.Flags.Strings(),
		Addr:        bp.Addr,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateBind(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create bind entry: %w", err)
	}

	s.notify("bind")
	return entry, nil
}

// ListBinds returns all configured address-bound entries.
func (s *Service) ListBinds(ctx context.Context) ([]*netperm.BindEntry, error) {
	return s.repo.ListBinds(ctx)
}

// DeleteBind removes an address-bound entry by ID.
func (s *Service) DeleteBind(ctx context.Context, id string) error {
	if err := s.repo.DeleteBind(ctx, id); err != nil {
		return err
	}
	s.notify("bind")
	return nil
}

// AddWhitelist parses and stores a subnet-bound permission spec.
func (s *Service) AddWhitelist(ctx context.Context, req *netperm.WhitelistCreateRequest) (*netperm.WhitelistEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sp, dir, err := netperm.ParseSubnet(req.Spec)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &netperm.WhitelistEntry{
		ID:          uuid.New().String(),
		Spec:        req.Spec,
		Flags:       sp.Flags,
		Permissions: sp.Flags.Strings(),
		Subnet:      sp.Subnet,
		Direction:   dir,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateWhitelist(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create whitelist entry: %w", err)
	}

	s.notify("whitelist")
	return entry, nil
}

// ListWhitelist returns all configured subnet-bound entries.
func (s *Service) ListWhitelist(ctx context.Context) ([]*netperm.WhitelistEntry, error) {
	return s.repo.ListWhitelist(ctx)
}

// DeleteWhitelist removes a subnet-bound entry by ID.
func (s *Service) DeleteWhitelist(ctx context.Context, id string) error {
	if err := s.repo.DeleteWhitelist(ctx, id); err != nil {
		return err
	}
	s.notify("whitelist")
	return nil
}

// Evaluate returns the union of the permissions of every whitelist entry
// whose subnet contains addr and whose direction covers dir. This is the
// lookup a connection manager performs when a peer connects.
func (s *Service) Evaluate(ctx context.Context, addr netip.Addr, dir netaddr.Direction) (netperm.Flags, error) {
	entries, err := s.repo.ListWhitelist(ctx)
	if err != nil {
		return netperm.None, fmt.Errorf("failed to list whitelist entries: %w", err)
	}

	var flags netperm.Flags
	for _, entry := range entries {
		if !entry.Direction.Matches(dir) {
			continue
		}
		if !entry.Subnet.Contains(addr.Unmap()) {
			continue
		}
		flags.Add(entry.Flags)
	}
	return flags, nil
}

// ImportSpecs loads configured bind and whitelist specs, typically from the
// seed file at startup. Entries already stored are skipped; a spec that does
// not parse aborts the import so a bad configuration never half-applies.
func (s *Service) ImportSpecs(ctx context.Context, binds, whitelist []string) error {
	for _, spec := range binds {
		_, err := s.AddBind(ctx, &netperm.BindCreateRequest{Spec: spec})
		if err != nil && !errors.Is(err, netperm.ErrDuplicateEntry) {
			return fmt.Errorf("bind spec %q: %w", spec, err)
		}
	}
	for _, spec := range whitelist {
		_, err := s.AddWhitelist(ctx, &netperm.WhitelistCreateRequest{Spec: spec})
		if err != nil && !errors.Is(err, netperm.ErrDuplicateEntry) {
			return fmt.Errorf("whitelist spec %q: %w", spec, err)
		}
	}
	return nil
}

func (s *Service) notify(kind string) {
	if s.notifier != nil {
		s.notifier.NotifyEntriesChanged(kind)
	}
}
