package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"keneviz-panel-go/internal/domain/license/model"
	"keneviz-panel-go/internal/platform/errors"
)

// MemoryStore keeps everything in process memory. Used by tests and as
// a fallback when no database path is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	admins    map[uint]*model.Admin
	byUser    map[string]uint
	keys      map[uint]*model.Key
	byToken   map[string]uint
	nextID    uint
	nextAdmin uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins:  make(map[uint]*model.Admin),
		byUser:  make(map[string]uint),
		keys:    make(map[uint]*model.Key),
		byToken: make(map[string]uint),
	}
}

func (s *MemoryStore) CreateAdmin(_ context.Context, username, passwordHash string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUser[username]; ok {
		return nil, ErrAdminExists
	}
	s.nextAdmin++
	admin := &model.Admin{
		ID:           s.nextAdmin,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.admins[admin.ID] = admin
	s.byUser[username] = admin.ID
	out := *admin
	return &out, nil
}

func (s *MemoryStore) FindAdmin(_ context.Context, username string) (*model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUser[username]
	if !ok {
		return nil, ErrNotFound
	}
	out := *s.admins[id]
	return &out, nil
}

func (s *MemoryStore) FindAdminByID(_ context.Context, id uint) (*model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *admin
	return &out, nil
}

func (s *MemoryStore) CreateKey(_ context.Context, plan model.Plan, note string) (*model.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := model.NewKey(plan, note, time.Now())
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "store.createKey", "invalid plan", err)
	}
	if key.Token, err = generateToken(); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "store.createKey", "generate token", err)
	}

	for attempt := 0; ; attempt++ {
		if _, taken := s.byToken[key.Token]; !taken {
			break
		}
		if attempt+1 >= maxTokenAttempts {
			return nil, errors.New(errors.KindStorage, "store.createKey", "token space exhausted")
		}
		token, err := generateToken()
		if err != nil {
			return nil, errors.Wrap(errors.KindStorage, "store.createKey", "generate token", err)
		}
		key.Token = token
	}

	s.nextID++
	key.ID = s.nextID
	stored := key
	s.keys[key.ID] = &stored
	s.byToken[key.Token] = key.ID
	out := stored
	return &out, nil
}

func (s *MemoryStore) FindKeyByToken(_ context.Context, token string) (*model.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	out := *s.keys[id]
	return &out, nil
}

func (s *MemoryStore) FindKeyByID(_ context.Context, id uint) (*model.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *key
	return &out, nil
}

func (s *MemoryStore) Deactivate(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.keys[id]
	if !ok {
		return ErrNotFound
	}
	key.Active = false
	return nil
}

func (s *MemoryStore) ListRecentKeys(_ context.Context, limit int) ([]model.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]model.Key, 0, len(s.keys))
	for _, k := range s.keys {
		keys = append(keys, *k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CreatedAt.Equal(keys[j].CreatedAt) {
			return keys[i].ID > keys[j].ID
		}
		return keys[i].CreatedAt.After(keys[j].CreatedAt)
	})
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func (s *MemoryStore) CountKeys(_ context.Context) (total, active int64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, k := range s.keys {
		total++
		if k.Active {
			active++
		}
	}
	return total, active, nil
}

func (s *MemoryStore) Close() error { return nil }
