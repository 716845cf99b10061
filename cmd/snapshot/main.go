package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/snapshot"
	"dataitjobs/internal/usecase"

	"go.uber.org/zap"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "dashboard server base url")
	page := flag.String("page", "all", "page to capture: overview, skills, trends, geography or all")
	out := flag.String("out", "snapshots", "output directory")
	query := flag.String("query", "", "query string applied to every page, e.g. month=3&top_k=5")
	width := flag.Int("width", 1280, "viewport width")
	height := flag.Int("height", 900, "viewport height")
	settle := flag.Duration("settle", 1500*time.Millisecond, "wait after load before capture")
	timeout := flag.Duration("timeout", 30*time.Second, "per page timeout")
	workers := flag.Int("workers", 2, "pages captured in parallel")
	env := flag.String("env", os.Getenv("APP_ENV"), "logging environment")
	flag.Parse()

	lg, err := logger.New(*env, os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	pages := usecase.Pages
	if p := strings.ToLower(strings.TrimSpace(*page)); p != "all" {
		pages = []string{p}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := snapshot.New(snapshot.Options{
		BaseURL: *baseURL,
		Query:   *query,
		OutDir:  *out,
		Width:   *width,
		Height:  *height,
		Timeout: *timeout,
		Settle:  *settle,
		Workers: *workers,
	}, lg)

	results, err := c.Capture(ctx, pages)
	if err != nil {
		lg.Fatal("snapshot failed", zap.Error(err))
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		lg.Info("saved", zap.String("page", r.Page), zap.String("path", r.Path))
	}
	if failed > 0 {
		lg.Error("some pages failed", zap.Int("failed", failed), zap.Int("total", len(results)))
		os.Exit(1)
	}
}
