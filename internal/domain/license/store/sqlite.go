package store

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"keneviz-panel-go/internal/domain/license/model"
	"keneviz-panel-go/internal/platform/errors"
	"keneviz-panel-go/internal/platform/storage"
)

// SQLiteStore persists admins and keys through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateAdmin(ctx context.Context, username, passwordHash string) (*model.Admin, error) {
	rec := storage.Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminExists
		}
		return nil, errors.Wrap(errors.KindStorage, "store.createAdmin", "insert admin", err)
	}
	return adminFromRecord(rec), nil
}

func (s *SQLiteStore) FindAdmin(ctx context.Context, username string) (*model.Admin, error) {
	var rec storage.Admin
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(errors.KindStorage, "store.findAdmin", "query admin", err)
	}
	return adminFromRecord(rec), nil
}

func (s *SQLiteStore) FindAdminByID(ctx context.Context, id uint) (*model.Admin, error) {
	var rec storage.Admin
	err := s.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(errors.KindStorage, "store.findAdmin", "query admin", err)
	}
	return adminFromRecord(rec), nil
}

func (s *SQLiteStore) CreateKey(ctx context.Context, plan model.Plan, note string) (*model.Key, error) {
	key, err := model.NewKey(plan, note, time.Now())
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "store.createKey", "invalid plan", err)
	}
	if key.Token, err = generateToken(); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "store.createKey", "generate token", err)
	}

	// The unique index on token is the collision check. Insert and
	// regenerate on a duplicate instead of checking first, so
	// concurrent mints cannot race the same token.
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		rec := keyToRecord(key)
		err := s.db.WithContext(ctx).Create(&rec).Error
		if err == nil {
			key.ID = rec.ID
			out := key
			return &out, nil
		}
		if !stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.Wrap(errors.KindStorage, "store.createKey", "insert key", err)
		}
		token, terr := generateToken()
		if terr != nil {
			return nil, errors.Wrap(errors.KindStorage, "store.createKey", "generate token", terr)
		}
		key.Token = token
	}
	return nil, errors.New(errors.KindStorage, "store.createKey", "token space exhausted")
}

func (s *SQLiteStore) FindKeyByToken(ctx context.Context, token string) (*model.Key, error) {
	var rec storage.LicenseKey
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&rec).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(errors.KindStorage, "store.findKey", "query key", err)
	}
	return keyFromRecord(rec), nil
}

func (s *SQLiteStore) FindKeyByID(ctx context.Context, id uint) (*model.Key, error) {
	var rec storage.LicenseKey
	err := s.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(errors.KindStorage, "store.findKey", "query key", err)
	}
	return keyFromRecord(rec), nil
}

func (s *SQLiteStore) Deactivate(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&storage.LicenseKey{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		return errors.Wrap(errors.KindStorage, "store.deactivate", "update key", res.Error)
	}
	if res.RowsAffected == 0 {
		var rec storage.LicenseKey
		if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
			return ErrNotFound
		}
	}
	return nil
}

func (s *SQLiteStore) ListRecentKeys(ctx context.Context, limit int) ([]model.Key, error) {
	var recs []storage.LicenseKey
	q := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "store.listKeys", "query keys", err)
	}
	keys := make([]model.Key, 0, len(recs))
	for _, rec := range recs {
		keys = append(keys, *keyFromRecord(rec))
	}
	return keys, nil
}

func (s *SQLiteStore) CountKeys(ctx context.Context) (total, active int64, err error) {
	if err = s.db.WithContext(ctx).Model(&storage.LicenseKey{}).Count(&total).Error; err != nil {
		return 0, 0, errors.Wrap(errors.KindStorage, "store.countKeys", "count keys", err)
	}
	if err = s.db.WithContext(ctx).Model(&storage.LicenseKey{}).Where("active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, errors.Wrap(errors.KindStorage, "store.countKeys", "count active keys", err)
	}
	return total, active, nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func adminFromRecord(rec storage.Admin) *model.Admin {
	return &model.Admin{
		ID:           rec.ID,
		Username:     rec.Username,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}
}

func keyToRecord(k model.Key) storage.LicenseKey {
	return storage.LicenseKey{
		ID:        k.ID,
		Token:     k.Token,
		Plan:      string(k.Plan),
		CreatedAt: k.CreatedAt,
		ExpiresAt: k.ExpiresAt,
		Active:    k.Active,
		Note:      k.Note,
	}
}

func keyFromRecord(rec storage.LicenseKey) *model.Key {
	return &model.Key{
		ID:        rec.ID,
		Token:     rec.Token,
		Plan:      model.Plan(rec.Plan),
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
		Active:    rec.Active,
		Note:      rec.Note,
	}
}
