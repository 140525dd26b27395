// Package persistence implements the durable key-value stores the ledger
// persists its state slices into.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/integration/persistence/model"
)

// gormKeyValueStore implements adapter.KeyValueStore over a SQL table.
type gormKeyValueStore struct {
	db     *gorm.DB
	prefix string
}

// NewGormKeyValueStore creates a key-value store backed by the ledger_kv table.
// Every key is stored as prefix+key.
func NewGormKeyValueStore(db *gorm.DB, prefix string) adapter.KeyValueStore {
	return &gormKeyValueStore{
		db:     db,
		prefix: prefix,
	}
}

// Get returns the value stored under key.
func (s *gormKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	var row model.KeyValueModel
	result := s.db.WithContext(ctx).
		Where("slot_key = ?", s.prefix+key).
		First(&row)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", domainerror.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read key %s: %w", key, result.Error)
	}
	return row.Value, nil
}

// Set upserts value under key.
func (s *gormKeyValueStore) Set(ctx context.Context, key, value string) error {
	row := &model.KeyValueModel{
		Key:       s.prefix + key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(row)
	if result.Error != nil {
		return fmt.Errorf("failed to write key %s: %w", key, result.Error)
	}
	return nil
}

// Delete removes key.
func (s *gormKeyValueStore) Delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).
		Where("slot_key = ?", s.prefix+key).
		Delete(&model.KeyValueModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, result.Error)
	}
	return nil
}

// Ping checks the database connection.
func (s *gormKeyValueStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
