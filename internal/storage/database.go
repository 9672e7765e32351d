package storage

import (
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the SQLite database at dataSourceName and keeps the
// save slot schema up to date.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Schema changes are additive; AutoMigrate never drops columns.
	if err := db.AutoMigrate(&game.SaveSlot{}); err != nil {
		return nil, err
	}
	return db, nil
}
