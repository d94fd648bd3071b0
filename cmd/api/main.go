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

	"blog-api/internal/auth"
	"blog-api/internal/config"
	"blog-api/pkg/logger"
	"blog-api/pkg/mongodb"

	"github.com/gin-gonic/gin"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}
	guard := auth.NewGuard(verifier, cfg.Auth.CookieName)

	mongoClient, err := mongodb.Open(rootCtx, mongodb.Config{
		URL:             cfg.Mongo.URL,
		ConnectTimeout:  cfg.Mongo.ConnectTimeout,
		MaxPoolSize:     cfg.Mongo.MaxPoolSize,
		MinPoolSize:     cfg.Mongo.MinPoolSize,
		MaxConnIdleTime: cfg.Mongo.MaxConnIdleTime,
	})
	if err != nil {
		log.Error("mongo init failed", "err", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error("mongo disconnect failed", "err", err)
		}
	}()

	r := newRouter(cfg, log, guard, mongodb.Pinger(mongoClient.Database(cfg.Mongo.Database), 2*time.Second))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "database", cfg.Mongo.Database)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
