package snapshot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"
	"time"
)

func TestPageURL(t *testing.T) {
	c := New(Options{BaseURL: "http://localhost:8080/", Query: "?month=3&top_k=5"}, nil)

	got, err := c.PageURL("skills")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "http://localhost:8080/dashboard/skills?month=3&top_k=5" {
		t.Fatalf("unexpected url: %s", got)
	}

	if _, err := c.PageURL("admin"); err == nil {
		t.Fatalf("expected unknown page error")
	}
	if _, err := New(Options{BaseURL: "localhost"}, nil).PageURL("skills"); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}

func TestCapture_WritesPNGPerPage(t *testing.T) {
	dir := t.TempDir()
	c := New(Options{BaseURL: "http://localhost:8080", OutDir: dir, Workers: 3}, nil)

	var stopped atomic.Bool
	c.startBrowser = func(context.Context) (shootFunc, context.CancelFunc, error) {
		shoot := func(_ context.Context, pageURL string) ([]byte, error) {
			return []byte(pageURL), nil
		}
		return shoot, func() { stopped.Store(true) }, nil
	}

	pages := []string{"overview", "skills", "trends", "geography"}
	results, err := c.Capture(context.Background(), pages)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != len(pages) {
		t.Fatalf("expected %d results, got %d", len(pages), len(results))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Page < results[j].Page })
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("page %s: unexpected err: %v", r.Page, r.Err)
		}
		b, err := os.ReadFile(filepath.Join(dir, r.Page+".png"))
		if err != nil {
			t.Fatalf("read %s: %v", r.Page, err)
		}
		if !bytes.HasSuffix(b, []byte("/dashboard/"+r.Page)) {
			t.Fatalf("page %s captured wrong url: %s", r.Page, b)
		}
	}
	if !stopped.Load() {
		t.Fatalf("expected browser to be stopped")
	}
}

func TestCapture_FailedPageReported(t *testing.T) {
	dir := t.TempDir()
	c := New(Options{BaseURL: "http://localhost:8080", OutDir: dir}, nil)
	c.startBrowser = func(context.Context) (shootFunc, context.CancelFunc, error) {
		shoot := func(_ context.Context, pageURL string) ([]byte, error) {
			if bytes.Contains([]byte(pageURL), []byte("trends")) {
				return nil, errors.New("timeout")
			}
			return []byte("png"), nil
		}
		return shoot, func() {}, nil
	}

	results, err := c.Capture(context.Background(), []string{"overview", "trends"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			if r.Page != "trends" || r.Path != "" {
				t.Fatalf("unexpected failed result: %+v", r)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("expected one failed page, got %d", failed)
	}
}

func TestCapture_Validation(t *testing.T) {
	c := New(Options{BaseURL: "http://localhost:8080", OutDir: t.TempDir()}, nil)
	c.startBrowser = func(context.Context) (shootFunc, context.CancelFunc, error) {
		t.Fatalf("browser must not start for invalid input")
		return nil, nil, nil
	}
	if _, err := c.Capture(context.Background(), nil); err == nil {
		t.Fatalf("expected error for no pages")
	}
	if _, err := c.Capture(context.Background(), []string{"nope"}); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(2, 5)
	results := pool.Run(context.Background())
	for i := 0; i < 5; i++ {
		pool.Submit(func(context.Context) Result { return Result{Page: "p"} })
	}
	pool.Close()

	n := 0
	for range results {
		n++
	}
	if n != 5 {
		t.Fatalf("expected 5 results, got %d", n)
	}
}

func TestWorkerPool_RateLimit(t *testing.T) {
	pool := NewWorkerPool(3, 3)
	pool.SetRateLimit(20)
	results := pool.Run(context.Background())

	start := time.Now()
	for i := 0; i < 3; i++ {
		pool.Submit(func(context.Context) Result { return Result{} })
	}
	pool.Close()
	for range results {
	}
	// burst of one, then 50ms between starts
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Fatalf("expected rate limited starts, took %s", elapsed)
	}
}
