package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"slotbook/server/internal/config"
	"slotbook/server/internal/httpapi"
	"slotbook/server/internal/store"
	"slotbook/server/internal/store/memory"
	"slotbook/server/internal/store/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var st store.Store
	var closer func()

	if cfg.DatabaseURL != "" {
		pg, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to init postgres store: %v", err)
		}
		ctxMigrate, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
		if err := pg.Migrate(ctxMigrate); err != nil {
			cancelMigrate()
			log.Fatalf("failed to apply schema: %v", err)
		}
		cancelMigrate()
		st = pg
		closer = pg.Close
		log.Printf("using postgres store")
	} else {
		st = memory.NewStore()
		log.Printf("using memory store")
	}

	if closer != nil {
		defer closer()
	}

	srv := httpapi.NewServer(cfg, st)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("slotbook listening on %s", cfg.ListenAddr())
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Printf("shutdown requested")
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
}
