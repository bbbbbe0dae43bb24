// Package store persists admin accounts and license keys. Two drivers
// exist: an in-memory store for tests and a sqlite store for production.
package store

import (
	"context"

	"keneviz-panel-go/internal/domain/license/model"
	"keneviz-panel-go/internal/platform/errors"
)

var (
	// ErrNotFound is returned when a key or admin lookup misses.
	ErrNotFound = errors.New(errors.KindStorage, "store.lookup", "record not found")
	// ErrAdminExists is returned when an admin username is already taken.
	ErrAdminExists = errors.New(errors.KindStorage, "store.createAdmin", "admin already exists")
)

// generateToken is swapped out in tests to force collisions.
var generateToken = model.GenerateToken

// maxTokenAttempts bounds collision regeneration before giving up.
const maxTokenAttempts = 5

// Store persists admins and license keys. Implementations must be safe
// for concurrent use.
type Store interface {
	CreateAdmin(ctx context.Context, username, passwordHash string) (*model.Admin, error)
	FindAdmin(ctx context.Context, username string) (*model.Admin, error)
	FindAdminByID(ctx context.Context, id uint) (*model.Admin, error)

	// CreateKey mints and persists a key under the given plan. Token
	// collisions are handled inside the insert by regenerating, so two
	// concurrent mints can never race a check-then-insert window.
	CreateKey(ctx context.Context, plan model.Plan, note string) (*model.Key, error)
	FindKeyByToken(ctx context.Context, token string) (*model.Key, error)
	FindKeyByID(ctx context.Context, id uint) (*model.Key, error)
	// Deactivate clears the active flag. Deactivating an already
	// inactive key is a no-op.
	Deactivate(ctx context.Context, id uint) error
	ListRecentKeys(ctx context.Context, limit int) ([]model.Key, error)
	CountKeys(ctx context.Context) (total, active int64, err error)

	Close() error
}
