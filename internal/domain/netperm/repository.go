package netperm

import "context"

// Repository persists configured permission entries.
type Repository interface {
	CreateBind(ctx context.Context, entry *BindEntry) error
	ListBinds(ctx context.Context) ([]*BindEntry, error)
	DeleteBind(ctx context.Context, id string) error

	CreateWhitelist(ctx context.Context, entry *WhitelistEntry) error
	ListWhitelist(ctx context.Context) ([]*WhitelistEntry, error)
	DeleteWhitelist(ctx context.Context, id string) error
}
