// main.go - Entry point and dependency injection
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sstent/workoutstats/internal/config"
	"github.com/sstent/workoutstats/internal/database"
	"github.com/sstent/workoutstats/internal/gateway"
	"github.com/sstent/workoutstats/internal/ingest"
	"github.com/sstent/workoutstats/internal/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type App struct {
	cfg      config.Config
	db       *database.SQLiteDB
	cron     *cron.Cron
	server   *http.Server
	ingest   *ingest.Service
	shutdown chan os.Signal
}

func newApp(cfg config.Config) *App {
	return &App{
		cfg:      cfg,
		shutdown: make(chan os.Signal, 1),
	}
}

func (app *App) run() error {
	if err := app.init(); err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	if err := app.start(); err != nil {
		app.stop()
		return err
	}

	// Wait for shutdown signal
	signal.Notify(app.shutdown, os.Interrupt, syscall.SIGTERM)
	<-app.shutdown

	app.stop()
	return nil
}

func (app *App) init() error {
	var err error

	app.db, err = database.NewSQLiteDB(app.cfg.DBPath)
	if err != nil {
		return err
	}

	opts := []ingest.Option{ingest.WithInbox(app.cfg.InboxDir)}
	if app.cfg.GatewayURL != "" {
		client := gateway.NewClient(app.cfg.GatewayURL, app.cfg.GatewayTimeout)
		opts = append(opts, ingest.WithSource(client, app.cfg.GatewayBatch))
	}
	app.ingest = ingest.NewService(app.db, app.cfg.Athlete, opts...)

	app.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	app.server = &http.Server{
		Addr:    app.cfg.HTTPAddress,
		Handler: web.NewRouter(web.NewWebHandler(app.db, app.ingest)),
	}

	return nil
}

func (app *App) start() error {
	_, err := app.cron.AddFunc(app.cfg.SyncSchedule, func() {
		log.Println("Starting scheduled sync...")
		if _, err := app.ingest.Sync(context.Background()); err != nil {
			log.Printf("Sync failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", app.cfg.SyncSchedule, err)
	}
	app.cron.Start()

	// Start web server
	go func() {
		log.Printf("Server starting on %s", app.cfg.HTTPAddress)
		if err := app.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

func (app *App) stop() {
	log.Println("Shutting down...")

	// Wait for a running sync to finish
	<-app.cron.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if app.db != nil {
		app.db.Close()
	}

	log.Println("Shutdown complete")
}
