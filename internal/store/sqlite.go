package store

import (
	"context"
	"errors"
	"fmt"

	"lostfound/internal/middleware"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the single-table layout of the sqlite backend: one row per
// stored key, value held as an opaque text payload.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value;not null"`
}

// TableName overrides the GORM default pluralization.
func (Entry) TableName() string {
	return "entries"
}

// SQLiteStore persists the key-value state to a local database file.
// It is the default backend: the per-installation analog of the
// browser's per-origin storage.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (and if needed creates) the store file at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store file %q: %w", path, err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store schema: %w", err)
	}

	middleware.Logger.Info("store opened", "backend", "sqlite", "path", path)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	middleware.StoreOps.WithLabelValues("sqlite", "get").Inc()
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		middleware.StoreErrors.WithLabelValues("sqlite", "get").Inc()
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	middleware.StoreOps.WithLabelValues("sqlite", "set").Inc()
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&Entry{Key: key, Value: value}).Error
	if err != nil {
		middleware.StoreErrors.WithLabelValues("sqlite", "set").Inc()
	}
	return err
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	middleware.StoreOps.WithLabelValues("sqlite", "remove").Inc()
	err := s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
	if err != nil {
		middleware.StoreErrors.WithLabelValues("sqlite", "remove").Inc()
	}
	return err
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	middleware.StoreOps.WithLabelValues("sqlite", "keys").Inc()
	var keys []string
	err := s.db.WithContext(ctx).Model(&Entry{}).Pluck("key", &keys).Error
	if err != nil {
		middleware.StoreErrors.WithLabelValues("sqlite", "keys").Inc()
		return nil, err
	}
	return keys, nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
