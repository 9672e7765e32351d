package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/config"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/game"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/storage"
)

func loadContentOrExit(ctx context.Context, s config.Settings) *game.GameConfig {
	cfg, err := config.LoadContent(ctx, s.ContentDir)
	if err != nil {
		logging.Fatal("Missing or invalid game content", err, logging.Fields{constants.LogFieldDir: s.ContentDir})
	}
	if err := s.CheckContent(cfg); err != nil {
		logging.Fatal("Invalid settings", err, logging.Fields{constants.LogFieldDifficulty: s.Difficulty})
	}
	return cfg
}

func openStoreOrExit(ctx context.Context, s config.Settings) storage.Store {
	store, err := storage.Open(ctx, s)
	if err != nil {
		logging.Fatal("Failed to open save store", err, logging.Fields{constants.LogFieldStore: s.Store})
	}
	return store
}

// newRand seeds from seed, or from the clock when seed is zero.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
