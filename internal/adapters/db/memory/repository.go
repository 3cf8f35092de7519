package memory

import (
	"context"
	"sort"
	"sync"

	"peerperm/internal/domain/netperm"
)

// Repository is an in-memory implementation of netperm.Repository, used when
// the database is disabled.
type Repository struct {
	mu        sync.RWMutex
	binds     map[string]*netperm.BindEntry      // id -> entry
	whitelist map[string]*netperm.WhitelistEntry // id -> entry
}

// NewRepository creates a new in-memory repository
func NewRepository() *Repository {
	return &Repository{
		binds:     make(map[string]*netperm.BindEntry),
		whitelist: make(map[string]*netperm.WhitelistEntry),
	}
}

func (r *Repository) CreateBind(ctx context.Context, entry *netperm.BindEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.binds {
		if existing.Spec == entry.Spec {
			return netperm.ErrDuplicateEntry
		}
	}
	r.binds[entry.ID] = entry
	return nil
}

func (r *Repository) ListBinds(ctx context.Context) ([]*netperm.BindEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*netperm.BindEntry, 0, len(r.binds))
	for _, entry := range r.binds {
		copied := *entry
		entries = append(entries, &copied)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })
	return entries, nil
}

func (r *Repository) DeleteBind(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.binds[id]; !exists {
		return netperm.ErrEntryNotFound
	}
	delete(r.binds, id)
	return nil
}

func (r *Repository) CreateWhitelist(ctx context.Context, entry *netperm.WhitelistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.whitelist {
		if existing.Spec == entry.Spec {
			return netperm.ErrDuplicateEntry
		}
	}
	r.whitelist[entry.ID] = entry
	return nil
}

func (r *Repository) ListWhitelist(ctx context.Context) ([]*netperm.WhitelistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*netperm.WhitelistEntry, 0, len(r.whitelist))
	for _, entry := range r.whitelist {
		copied := *entry
		entries = append(entries, &copied)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })
	return entries, nil
}

func (r *Repository) DeleteWhitelist(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.whitelist[id]; !exists {
		return netperm.ErrEntryNotFound
	}
	delete(r.whitelist, id)
	return nil
}
