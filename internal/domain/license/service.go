// Package license implements key minting and validation on top of the
// key store.
package license

import (
	"context"
	"fmt"
	"time"

	"keneviz-panel-go/internal/domain/license/model"
	"keneviz-panel-go/internal/domain/license/store"
	"keneviz-panel-go/internal/platform/errors"
	"keneviz-panel-go/internal/platform/logging"
)

// ErrInvalidKey covers unknown, revoked and expired keys alike. Callers
// never learn which, so tokens cannot be probed.
var ErrInvalidKey = errors.New(errors.KindLicense, "license.validate", "invalid or expired key")

const (
	// MaxBatchSize caps a single generate request.
	MaxBatchSize = 1000
)

type Service struct {
	store  store.Store
	logger *logging.Logger
	now    func() time.Time
}

func NewService(st store.Store, logger *logging.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Mint creates one key under the given plan.
func (s *Service) Mint(ctx context.Context, plan model.Plan, note string) (*model.Key, error) {
	if !plan.Valid() {
		return nil, errors.New(errors.KindLicense, "license.mint", fmt.Sprintf("unknown plan %q", plan))
	}
	key, err := s.store.CreateKey(ctx, plan, note)
	if err != nil {
		return nil, err
	}
	s.logger.Info("minted key %s (plan=%s)", key.Token, key.Plan)
	return key, nil
}

// MintBatch creates between 1 and MaxBatchSize keys. Out of range
// quantities are clamped, not rejected.
func (s *Service) MintBatch(ctx context.Context, plan model.Plan, qty int, note string) ([]model.Key, error) {
	if qty < 1 {
		qty = 1
	}
	if qty > MaxBatchSize {
		qty = MaxBatchSize
	}
	keys := make([]model.Key, 0, qty)
	for i := 0; i < qty; i++ {
		key, err := s.Mint(ctx, plan, note)
		if err != nil {
			return keys, err
		}
		keys = append(keys, *key)
	}
	return keys, nil
}

// ValidateToken checks a submitted token at login. Expired keys are
// deactivated as a side effect and rejected with the same error as
// unknown tokens.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.Key, error) {
	key, err := s.store.FindKeyByToken(ctx, token)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrInvalidKey
		}
		return nil, err
	}
	return s.check(ctx, key)
}

// CheckUsable revalidates an already known key, typically on every
// lookup request of a running session.
func (s *Service) CheckUsable(ctx context.Context, id uint) (*model.Key, error) {
	key, err := s.store.FindKeyByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrInvalidKey
		}
		return nil, err
	}
	return s.check(ctx, key)
}

func (s *Service) check(ctx context.Context, key *model.Key) (*model.Key, error) {
	if !key.Active {
		return nil, ErrInvalidKey
	}
	if key.ExpiresAt != nil && s.now().After(*key.ExpiresAt) {
		if err := s.store.Deactivate(ctx, key.ID); err != nil {
			s.logger.Warn("failed to deactivate expired key %d: %v", key.ID, err)
		} else {
			s.logger.Info("key %d expired, deactivated", key.ID)
		}
		return nil, ErrInvalidKey
	}
	return key, nil
}

// RemainingLifetime renders the time a key has left, in the panel's
// wording. Free keys are unlimited and expiry never shows negative.
func (s *Service) RemainingLifetime(key *model.Key) string {
	if key.ExpiresAt == nil {
		return "Limitsiz"
	}
	left := key.ExpiresAt.Sub(s.now())
	if left < 0 {
		left = 0
	}
	days := int(left / (24 * time.Hour))
	hours := int(left%(24*time.Hour)) / int(time.Hour)
	return fmt.Sprintf("%d gün %d saat", days, hours)
}

// ListRecent returns the newest keys for the admin panel.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]model.Key, error) {
	return s.store.ListRecentKeys(ctx, limit)
}

// Counts reports total and active key counts.
func (s *Service) Counts(ctx context.Context) (total, active int64, err error) {
	return s.store.CountKeys(ctx)
}
