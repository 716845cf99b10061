package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dataitjobs/internal/app"
	"dataitjobs/internal/config"
	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/pkg/telemetry"

	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.App.AppName, version, cfg.Telemetry.CollectorURL)
	if err != nil {
		lg.Warn("tracing disabled", zap.Error(err))
		shutdownTracer = func() {}
	}
	defer shutdownTracer()

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to bootstrap app", zap.Error(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			lg.Warn("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		lg.Fatal("invalid HTTP port", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("http server listening", zap.String("addr", addr), zap.String("env", cfg.App.Environment))
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
		lg.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			lg.Warn("shutdown error", zap.Error(err))
		}
	}
}
