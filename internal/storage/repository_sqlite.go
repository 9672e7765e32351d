package storage

import (
	"context"
	"errors"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLiteStore returns a Store backed by the save_slots table of db.
func NewSQLiteStore(db *gorm.DB) Store {
	return &sqliteStore{db: db}
}

func (r *sqliteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var slot game.SaveSlot
	err := r.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return slot.Payload, nil
}

func (r *sqliteStore) Save(ctx context.Context, key string, payload []byte) error {
	slot := game.SaveSlot{Key: key, Payload: payload}
	// Upsert keyed by slot_key so repeated saves overwrite the same row.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&slot).Error
}

func (r *sqliteStore) Clear(ctx context.Context, key string) error {
	// Hard delete; a soft-deleted row would still hold the unique key.
	return r.db.WithContext(ctx).Unscoped().Where("slot_key = ?", key).Delete(&game.SaveSlot{}).Error
}

func (r *sqliteStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
