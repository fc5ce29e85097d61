package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"techtimes/internal/assistant"
	"techtimes/internal/config"
	"techtimes/internal/contact"
	"techtimes/internal/kvstore"
	"techtimes/internal/library"
	"techtimes/internal/news"
	"techtimes/internal/newsdata"
	"techtimes/internal/server"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	if dir := filepath.Dir(cfg.Store.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := kvstore.NewSQLite(cfg.Store.DatabasePath, cfg.Store.QuotaBytes, kvstore.KeyArticles, log)
	if err != nil {
		log.Error("open database", "path", cfg.Store.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repo := news.Load(ctx, store, newsdata.Default(), log)
	list := library.Load(ctx, store, log)
	book := contact.Load(ctx, store, log)

	if cfg.Gemini.APIKey == "" {
		log.Warn("assistant running without credentials, replies will be unavailable")
	}
	bridge := assistant.New(cfg.Gemini.APIKey, cfg.Gemini.Model, repo.Articles, log)

	srv := server.New(repo, list, book, bridge, log)

	api := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:              cfg.Metrics.Addr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 2)
	go func() {
		log.Info("http listening", "addr", api.Addr)
		if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	go func() {
		log.Info("metrics listening", "addr", metricsSrv.Addr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-serveErr:
		log.Error("serve failed", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown incomplete", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics shutdown incomplete", "error", err)
	}

	log.Info("stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
