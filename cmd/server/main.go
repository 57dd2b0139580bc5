package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/chapterdesk/internal/api"
	"github.com/dgallion1/chapterdesk/internal/config"
	"github.com/dgallion1/chapterdesk/internal/editor"
	"github.com/dgallion1/chapterdesk/internal/pathstore"
	"github.com/dgallion1/chapterdesk/internal/publish"
	"github.com/dgallion1/chapterdesk/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Publish target: pathstore when configured, the log otherwise.
	var (
		ps   *pathstore.Client
		sink publish.Sink
	)
	if cfg.PathstoreURL != "" {
		ps = pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		sink = publish.NewPathstoreSink(ps, log)
	} else {
		sink = publish.NewLogSink(log)
	}

	opts := editor.DefaultOptions()
	opts.StrictPublish = cfg.StrictPublish

	sessions := session.NewRegistry(cfg.SessionTTL, sink, opts, log)
	sessions.Start(ctx)

	srv := api.NewServer(sessions, ps, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)

		sessions.Stop()
		if ps != nil {
			ps.Close()
		}
	}()

	log.Info("starting chapterdesk",
		"port", cfg.Port,
		"strict_publish", cfg.StrictPublish,
		"pathstore", cfg.PathstoreURL != "",
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
