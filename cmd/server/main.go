package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ywen250/finsim-backend/internal/api"
	"github.com/ywen250/finsim-backend/internal/catalog"
	"github.com/ywen250/finsim-backend/internal/config"
	"github.com/ywen250/finsim-backend/internal/recorder"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		logger.Error("load catalog", "dir", cfg.CatalogDir, "err", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "dir", cfg.CatalogDir, "scenarios", cat.Len())

	var rec recorder.Recorder = recorder.Noop{}
	if cfg.SQLitePath != "" {
		sq, err := recorder.NewSQLiteRecorder(cfg.SQLitePath)
		if err != nil {
			logger.Error("open recorder", "path", cfg.SQLitePath, "err", err)
			os.Exit(1)
		}
		defer sq.Close()
		rec = sq
	}

	server := api.New(cat, rec, logger, api.Options{SeedSessions: cfg.SeedSessions})

	if cfg.CatalogDir != "" {
		watcher := catalog.NewDirWatcher(cfg.CatalogDir, cfg.WatchInterval, func() {
			next, err := catalog.Load(cfg.CatalogDir)
			if err != nil {
				logger.Error("catalog reload failed", "err", err)
				return
			}
			server.SwapCatalog(next)
		})
		watcher.Start()
		defer watcher.Stop()
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("finsim api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
