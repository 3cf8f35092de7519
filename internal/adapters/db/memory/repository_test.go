package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"peerperm/internal/domain/netperm"
)

func bindEntry(id, spec string, created time.Time) *netperm.BindEntry {
	return &netperm.BindEntry{
		ID:        id,
		Spec:      spec,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestBindLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	now := time.Now()

	if err := repo.CreateBind(ctx, bindEntry("b2", "relay@10.0.0.2:8333", now.Add(time.Second))); err != nil {
		t.Fatalf("CreateBind returned error: %v", err)
	}
	if err := repo.CreateBind(ctx, bindEntry("b1", "relay@10.0.0.1:8333", now)); err != nil {
		t.Fatalf("CreateBind returned error: %v", err)
	}

	entries, err := repo.ListBinds(ctx)
	if err != nil {
		t.Fatalf("ListBinds returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "b1" || entries[1].ID != "b2" {
		t.Errorf("Expected creation order, got %s, %s", entries[0].ID, entries[1].ID)
	}

	if err := repo.DeleteBind(ctx, "b1"); err != nil {
		t.Fatalf("DeleteBind returned error: %v", err)
	}
	entries, _ = repo.ListBinds(ctx)
	if len(entries) != 1 || entries[0].ID != "b2" {
		t.Errorf("Unexpected entries after delete: %v", entries)
	}
}

func TestCreateBind_DuplicateSpec(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	now := time.Now()

	if err := repo.CreateBind(ctx, bindEntry("b1", "relay@10.0.0.1:8333", now)); err != nil {
		t.Fatal(err)
	}
	err := repo.CreateBind(ctx, bindEntry("b2", "relay@10.0.0.1:8333", now))
	if !errors.Is(err, netperm.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	if err := repo.DeleteBind(ctx, "missing"); !errors.Is(err, netperm.ErrEntryNotFound) {
		t.Errorf("DeleteBind: expected ErrEntryNotFound, got %v", err)
	}
	if err := repo.DeleteWhitelist(ctx, "missing"); !errors.Is(err, netperm.ErrEntryNotFound) {
		t.Errorf("DeleteWhitelist: expected ErrEntryNotFound, got %v", err)
	}
}

func TestListBinds_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	if err := repo.CreateBind(ctx, bindEntry("b1", "relay@10.0.0.1:8333", time.Now())); err != nil {
		t.Fatal(err)
	}

	entries, _ := repo.ListBinds(ctx)
	entries[0].Spec = "mutated"

	entries, _ = repo.ListBinds(ctx)
	if entries[0].Spec != "relay@10.0.0.1:8333" {
		t.Error("Mutating a listed entry must not affect the stored one")
	}
}

func TestWhitelistLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	now := time.Now()

	entry := &netperm.WhitelistEntry{ID: "w1", Spec: "noban@10.0.0.0/8", CreatedAt: now, UpdatedAt: now}
	if err := repo.CreateWhitelist(ctx, entry); err != nil {
		t.Fatalf("CreateWhitelist returned error: %v", err)
	}
	if err := repo.CreateWhitelist(ctx, &netperm.WhitelistEntry{ID: "w2", Spec: "noban@10.0.0.0/8"}); !errors.Is(err, netperm.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}

	entries, err := repo.ListWhitelist(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != "w1" {
		t.Errorf("Unexpected entries: %v", entries)
	}

	if err := repo.DeleteWhitelist(ctx, "w1"); err != nil {
		t.Fatalf("DeleteWhitelist returned error: %v", err)
	}
}
