package store

import (
	"context"
	"testing"

	"keneviz-panel-go/internal/domain/license/model"
)

func TestMemoryStoreAdmins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	admin, err := s.CreateAdmin(ctx, "admin", "hash")
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if admin.ID == 0 {
		t.Fatal("expected assigned id")
	}

	if _, err := s.CreateAdmin(ctx, "admin", "other"); err != ErrAdminExists {
		t.Fatalf("expected ErrAdminExists, got %v", err)
	}

	found, err := s.FindAdmin(ctx, "admin")
	if err != nil {
		t.Fatalf("FindAdmin returned error: %v", err)
	}
	if found.PasswordHash != "hash" {
		t.Fatalf("unexpected hash %q", found.PasswordHash)
	}

	byID, err := s.FindAdminByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("FindAdminByID returned error: %v", err)
	}
	if byID.Username != "admin" {
		t.Fatalf("unexpected username %q", byID.Username)
	}

	if _, err := s.FindAdmin(ctx, "nobody"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreKeyLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	key, err := s.CreateKey(ctx, model.PlanOneWeek, "test batch")
	if err != nil {
		t.Fatalf("CreateKey returned error: %v", err)
	}
	if !key.Active {
		t.Fatal("new key should be active")
	}
	if key.ExpiresAt == nil {
		t.Fatal("1week key should carry an expiry")
	}

	found, err := s.FindKeyByToken(ctx, key.Token)
	if err != nil {
		t.Fatalf("FindKeyByToken returned error: %v", err)
	}
	if found.ID != key.ID {
		t.Fatalf("found id %d, want %d", found.ID, key.ID)
	}

	if err := s.Deactivate(ctx, key.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}
	// Deactivation is idempotent.
	if err := s.Deactivate(ctx, key.ID); err != nil {
		t.Fatalf("second Deactivate returned error: %v", err)
	}
	found, err = s.FindKeyByID(ctx, key.ID)
	if err != nil {
		t.Fatalf("FindKeyByID returned error: %v", err)
	}
	if found.Active {
		t.Fatal("key should be inactive after Deactivate")
	}

	if err := s.Deactivate(ctx, 9999); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreTokenUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		key, err := s.CreateKey(ctx, model.PlanFree, "")
		if err != nil {
			t.Fatalf("CreateKey returned error: %v", err)
		}
		if seen[key.Token] {
			t.Fatalf("duplicate token %q", key.Token)
		}
		seen[key.Token] = true
	}
}

func TestMemoryStoreRegeneratesOnCollision(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.CreateKey(ctx, model.PlanFree, "")
	if err != nil {
		t.Fatalf("CreateKey returned error: %v", err)
	}

	// Force the next mint to collide on the first attempt.
	calls := 0
	orig := generateToken
	generateToken = func() (string, error) {
		calls++
		if calls == 1 {
			return first.Token, nil
		}
		return orig()
	}
	defer func() { generateToken = orig }()

	second, err := s.CreateKey(ctx, model.PlanFree, "")
	if err != nil {
		t.Fatalf("CreateKey returned error: %v", err)
	}
	if second.Token == first.Token {
		t.Fatal("collision was not regenerated")
	}
	if calls < 2 {
		t.Fatalf("expected a regeneration, got %d calls", calls)
	}
}

func TestMemoryStoreListAndCount(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var last *model.Key
	for i := 0; i < 5; i++ {
		key, err := s.CreateKey(ctx, model.PlanOneMonth, "")
		if err != nil {
			t.Fatalf("CreateKey returned error: %v", err)
		}
		last = key
	}
	if err := s.Deactivate(ctx, last.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	keys, err := s.ListRecentKeys(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecentKeys returned error: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
	// Newest first.
	if keys[0].ID != last.ID {
		t.Fatalf("expected newest key %d first, got %d", last.ID, keys[0].ID)
	}

	total, active, err := s.CountKeys(ctx)
	if err != nil {
		t.Fatalf("CountKeys returned error: %v", err)
	}
	if total != 5 || active != 4 {
		t.Fatalf("counts = (%d, %d), want (5, 4)", total, active)
	}
}
