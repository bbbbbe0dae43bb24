package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open initialises the sqlite database and migrates the schema.
func Open(dbPath string) (*gorm.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Admin{}, &LicenseKey{}, &AuditEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Admin is an administrator account. Created once at first startup when the
// table is empty; password changes go through an out-of-band path.
type Admin struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(200);not null"            json:"-"`
	CreatedAt    time.Time `                                             json:"created_at"`
}

// LicenseKey is a persisted license key record. Keys are never deleted;
// expiry clears the Active flag instead.
type LicenseKey struct {
	ID        uint       `gorm:"primaryKey"`
	Token     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`
	Plan      string     `gorm:"type:varchar(32);not null"             json:"plan"`
	CreatedAt time.Time  `gorm:"index"                                 json:"created_at"`
	ExpiresAt *time.Time `                                             json:"expires_at,omitempty"`
	Active    bool       `gorm:"default:true"                          json:"active"`
	Note      string     `gorm:"type:text"                             json:"note,omitempty"`
}

// AuditEvent stores a domain event emitted on the process event bus.
type AuditEvent struct {
	ID        uint           `gorm:"primaryKey"`
	EventType string         `gorm:"index;not null"`
	SessionID string         `gorm:"index"`
	KeyID     *uint          `gorm:"index"`
	Data      datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"index"`
}
