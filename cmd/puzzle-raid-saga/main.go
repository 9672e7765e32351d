package main

import (
	"context"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/api"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/config"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/service"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/storage"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/version"
)

func main() {
	ctx := context.Background()

	settings, err := config.LoadSettings()
	if err != nil {
		logging.Fatal("Invalid settings", err, nil)
	}
	logging.Info("Starting puzzle raid saga", logging.Fields{"version": version.Version, constants.LogFieldStore: settings.Store})

	cfg := loadContentOrExit(ctx, settings)
	store := openStoreOrExit(ctx, settings)
	defer store.Close()

	persistence := storage.NewPersistence(store, settings.Namespace, cfg)
	session := service.NewSession(ctx, cfg, persistence, service.Options{
		Difficulty:        settings.Difficulty,
		PresentationDelay: settings.PresentationDelay,
		Rand:              newRand(settings.Seed),
	})

	router := api.NewRouter(api.NewGameHandler(session, cfg), api.NewHub(session))
	runServer(router, settings.Address)
}
