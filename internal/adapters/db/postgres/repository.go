package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/netip"

	"peerperm/internal/domain/netperm"
	"peerperm/internal/netaddr"

	"github.com/lib/pq"
)

// Repository is a PostgreSQL implementation of netperm.Repository
type Repository struct {
	db *sql.DB
}

// NewRepository constructs a new Repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateBind(ctx context.Context, entry *netperm.BindEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bind_entries (id, spec, flags, addr, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.Spec, int64(entry.Flags), entry.Addr.String(), entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return netperm.ErrDuplicateEntry
		}
		return fmt.Errorf("create bind entry: %w", err)
	}
	return nil
}

func (r *Repository) ListBinds(ctx context.Context) ([]*netperm.BindEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, spec, flags, addr, created_at, updated_at
		FROM bind_entries
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list bind entries: %w", err)
	}
	defer rows.Close()

	var entries []*netperm.BindEntry
	for rows.Next() {
		var (
			entry netperm.BindEntry
			flags int64
			addr  string
		)
		if err := rows.Scan(&entry.ID, &entry.Spec, &flags, &addr, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bind entry: %w", err)
		}
		entry.Flags = netperm.Flags(flags)
		entry.Permissions = entry.Flags.Strings()
		entry.Addr, err = netip.ParseAddrPort(addr)
		if err != nil {
			return nil, fmt.Errorf("stored bind addr %q: %w", addr, err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

func (r *Repository) DeleteBind(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bind_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bind entry: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return netperm.ErrEntryNotFound
	}
	return nil
}

func (r *Repository) CreateWhitelist(ctx context.Context, entry *netperm.WhitelistEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO whitelist_entries (id, spec, flags, subnet, direction, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.Spec, int64(entry.Flags), entry.Subnet.String(), entry.Direction.String(), entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return netperm.ErrDuplicateEntry
		}
		return fmt.Errorf("create whitelist entry: %w", err)
	}
	return nil
}

func (r *Repository) ListWhitelist(ctx context.Context) ([]*netperm.WhitelistEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, spec, flags, subnet, direction, created_at, updated_at
		FROM whitelist_entries
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list whitelist entries: %w", err)
	}
	defer rows.Close()

	var entries []*netperm.WhitelistEntry
	for rows.Next() {
		var (
			entry     netperm.WhitelistEntry
			flags     int64
			subnet    string
			direction string
		)
		if err := rows.Scan(&entry.ID, &entry.Spec, &flags, &subnet, &direction, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan whitelist entry: %w", err)
		}
		entry.Flags = netperm.Flags(flags)
		entry.Permissions = entry.Flags.Strings()
		entry.Subnet, err = netip.ParsePrefix(subnet)
		if err != nil {
			return nil, fmt.Errorf("stored subnet %q: %w", subnet, err)
		}
		entry.Direction, err = netaddr.ParseDirection(direction)
		if err != nil {
			return nil, fmt.Errorf("stored direction %q: %w", direction, err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

func (r *Repository) DeleteWhitelist(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM whitelist_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete whitelist entry: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return netperm.ErrEntryNotFound
	}
	return nil
}
