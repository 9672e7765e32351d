package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// runServer serves handler on addr until SIGINT or SIGTERM.
func runServer(handler http.Handler, addr string) {
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", err, nil)
	}
	logging.Info("Server stopped", nil)
}
