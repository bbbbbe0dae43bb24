package license

import (
	"context"
	"testing"
	"time"

	"keneviz-panel-go/internal/domain/license/model"
	"keneviz-panel-go/internal/domain/license/store"
	"keneviz-panel-go/internal/platform/logging"
)

func testService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	logger, err := logging.New(logging.Config{Level: "error"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	st := store.NewMemoryStore()
	return NewService(st, logger), st
}

func TestMintAndValidate(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	key, err := svc.Mint(ctx, model.PlanOneMonth, "")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	got, err := svc.ValidateToken(ctx, key.Token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if got.ID != key.ID {
		t.Fatalf("validated id %d, want %d", got.ID, key.ID)
	}

	if _, err := svc.ValidateToken(ctx, "UNKNOWNTOKEN12345678"); err != ErrInvalidKey {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	if _, err := svc.Mint(ctx, model.Plan("2week"), ""); err == nil {
		t.Fatal("expected error for unknown plan")
	}
}

func TestMintBatchClamps(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	keys, err := svc.MintBatch(ctx, model.PlanFree, 0, "")
	if err != nil {
		t.Fatalf("MintBatch returned error: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("qty 0 should clamp to 1, got %d keys", len(keys))
	}

	keys, err = svc.MintBatch(ctx, model.PlanFree, 5, "toplu")
	if err != nil {
		t.Fatalf("MintBatch returned error: %v", err)
	}
	if len(keys) != 5 {
		t.Fatalf("expected 5 keys, got %d", len(keys))
	}
	for _, k := range keys {
		if k.Note != "toplu" {
			t.Fatalf("note not carried: %+v", k)
		}
	}
}

func TestExpiredKeyDeactivatedOnValidate(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	key, err := svc.Mint(ctx, model.PlanOneWeek, "")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	// Move the clock past the expiry.
	svc.now = func() time.Time { return key.ExpiresAt.Add(time.Hour) }

	if _, err := svc.ValidateToken(ctx, key.Token); err != ErrInvalidKey {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	stored, err := st.FindKeyByID(ctx, key.ID)
	if err != nil {
		t.Fatalf("FindKeyByID returned error: %v", err)
	}
	if stored.Active {
		t.Fatal("expired key should have been deactivated")
	}

	// Revalidation of the now inactive key stays invalid.
	if _, err := svc.CheckUsable(ctx, key.ID); err != ErrInvalidKey {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestKeyUsableAtExactExpiry(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	key, err := svc.Mint(ctx, model.PlanOneWeek, "")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	// Expiry is strict: the key is still good at the very instant.
	svc.now = func() time.Time { return *key.ExpiresAt }

	if _, err := svc.ValidateToken(ctx, key.Token); err != nil {
		t.Fatalf("key at expiry instant should validate, got %v", err)
	}

	svc.now = func() time.Time { return key.ExpiresAt.Add(time.Second) }

	if _, err := svc.ValidateToken(ctx, key.Token); err != ErrInvalidKey {
		t.Fatalf("expected ErrInvalidKey just past expiry, got %v", err)
	}
}

func TestFreeKeyNeverExpires(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	key, err := svc.Mint(ctx, model.PlanFree, "")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(10 * 365 * 24 * time.Hour) }

	if _, err := svc.CheckUsable(ctx, key.ID); err != nil {
		t.Fatalf("free key should stay usable, got %v", err)
	}
	if got := svc.RemainingLifetime(key); got != "Limitsiz" {
		t.Fatalf("remaining = %q, want Limitsiz", got)
	}
}

func TestRevokedKeyRejected(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	key, err := svc.Mint(ctx, model.PlanOneYear, "")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if err := st.Deactivate(ctx, key.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, key.Token); err != ErrInvalidKey {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestRemainingLifetime(t *testing.T) {
	svc, _ := testService(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	exp := base.Add(3*24*time.Hour + 5*time.Hour + 30*time.Minute)
	key := &model.Key{ExpiresAt: &exp}
	if got := svc.RemainingLifetime(key); got != "3 gün 5 saat" {
		t.Fatalf("remaining = %q, want %q", got, "3 gün 5 saat")
	}

	past := base.Add(-time.Hour)
	key = &model.Key{ExpiresAt: &past}
	if got := svc.RemainingLifetime(key); got != "0 gün 0 saat" {
		t.Fatalf("remaining = %q, want %q", got, "0 gün 0 saat")
	}
}
