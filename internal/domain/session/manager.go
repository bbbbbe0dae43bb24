package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"keneviz-panel-go/internal/platform/errors"
	"keneviz-panel-go/internal/platform/logging"
)

// ErrNotFound is returned for unknown, expired or tampered sessions.
var ErrNotFound = errors.New(errors.KindSession, "session.store", "session not found")

// Store persists session state keyed by session id. Implementations
// must expire entries on their own after the configured TTL.
type Store interface {
	Save(ctx context.Context, id string, state State) error
	Load(ctx context.Context, id string) (State, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Manager issues sessions, loads them from cookie tokens and writes
// state changes back to the store.
type Manager struct {
	store  Store
	codec  *Codec
	ttl    time.Duration
	logger *logging.Logger
}

func NewManager(st Store, codec *Codec, ttl time.Duration, logger *logging.Logger) *Manager {
	return &Manager{store: st, codec: codec, ttl: ttl, logger: logger}
}

// Issue creates a fresh session and returns it with its signed cookie
// token.
func (m *Manager) Issue(ctx context.Context) (*Session, string, error) {
	id := uuid.NewString()
	state := State{}
	if err := m.store.Save(ctx, id, state); err != nil {
		return nil, "", err
	}
	token, err := m.codec.Encode(id, m.ttl)
	if err != nil {
		return nil, "", err
	}
	return &Session{ID: id, State: state, ExpiresAt: time.Now().Add(m.ttl)}, token, nil
}

// Load resolves a cookie token to its session. Tampered tokens and
// unknown ids both come back as ErrNotFound.
func (m *Manager) Load(ctx context.Context, token string) (*Session, error) {
	id, err := m.codec.Decode(token)
	if err != nil {
		return nil, ErrNotFound
	}
	state, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, State: state}, nil
}

// Save writes the session's state back to the store, refreshing its TTL.
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	return m.store.Save(ctx, sess.ID, sess.State)
}

// Clear drops the session from the store.
func (m *Manager) Clear(ctx context.Context, sess *Session) error {
	return m.store.Delete(ctx, sess.ID)
}
