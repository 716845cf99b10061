package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/usecase"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Options configure a capture run. Settle is how long a page may animate
// after load before it is captured.
type Options struct {
	BaseURL string
	Query   string
	OutDir  string

	Width   int
	Height  int
	Timeout time.Duration
	Settle  time.Duration
	Workers int
	RPS     float64
}

type shootFunc func(ctx context.Context, pageURL string) ([]byte, error)

type Capturer struct {
	opts Options
	log  *zap.Logger

	startBrowser func(ctx context.Context) (shootFunc, context.CancelFunc, error)
}

func New(opts Options, log *zap.Logger) *Capturer {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Settle < 0 {
		opts.Settle = 0
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		opts.OutDir = "."
	}
	c := &Capturer{opts: opts, log: logger.OrNop(log)}
	c.startBrowser = c.chrome
	return c
}

// PageURL returns the address of a dashboard page with the configured query.
func (c *Capturer) PageURL(page string) (string, error) {
	if !usecase.IsPage(page) {
		return "", fmt.Errorf("unknown page %q", page)
	}
	u, err := url.Parse(strings.TrimSpace(c.opts.BaseURL))
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid base url %q", c.opts.BaseURL)
	}
	u = u.JoinPath("dashboard", page)
	u.RawQuery = strings.TrimPrefix(c.opts.Query, "?")
	return u.String(), nil
}

// Capture writes a PNG of every page into OutDir as <page>.png. Pages are
// captured concurrently in tabs of one browser; a failed page does not stop
// the others and is reported in its Result.
func (c *Capturer) Capture(ctx context.Context, pages []string) ([]Result, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to capture")
	}
	urls := make(map[string]string, len(pages))
	for _, p := range pages {
		u, err := c.PageURL(p)
		if err != nil {
			return nil, err
		}
		urls[p] = u
	}
	if err := os.MkdirAll(c.opts.OutDir, 0o755); err != nil {
		return nil, err
	}

	shoot, stop, err := c.startBrowser(ctx)
	if err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	defer stop()

	pool := NewWorkerPool(c.opts.Workers, len(pages))
	pool.SetRateLimit(c.opts.RPS)
	results := pool.Run(ctx)

	for _, p := range pages {
		page, pageURL := p, urls[p]
		pool.Submit(func(ctx context.Context) Result {
			return c.captureOne(ctx, shoot, page, pageURL)
		})
	}
	pool.Close()

	out := make([]Result, 0, len(pages))
	for r := range results {
		out = append(out, r)
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Capturer) captureOne(ctx context.Context, shoot shootFunc, page, pageURL string) Result {
	start := time.Now()
	res := Result{Page: page}

	buf, err := shoot(ctx, pageURL)
	if err != nil {
		res.Err = err
		c.log.Warn("snapshot failed", zap.String("page", page), zap.String("url", pageURL), zap.Error(err))
		return res
	}

	res.Path = filepath.Join(c.opts.OutDir, page+".png")
	if err := os.WriteFile(res.Path, buf, 0o644); err != nil {
		res.Err = err
		return res
	}
	c.log.Info("snapshot written",
		zap.String("page", page),
		zap.String("path", res.Path),
		zap.Int("bytes", len(buf)),
		zap.Duration("duration", time.Since(start)),
	)
	return res
}

func (c *Capturer) chrome(ctx context.Context) (shootFunc, context.CancelFunc, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.WindowSize(c.opts.Width, c.opts.Height),
		)...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	stop := func() {
		browserCancel()
		allocCancel()
	}

	// launch the browser once so tabs share it
	if err := chromedp.Run(browserCtx); err != nil {
		stop()
		return nil, nil, err
	}

	shoot := func(ctx context.Context, pageURL string) ([]byte, error) {
		tabCtx, tabCancel := chromedp.NewContext(browserCtx)
		defer tabCancel()

		reqCtx, reqCancel := context.WithTimeout(tabCtx, c.opts.Timeout)
		defer reqCancel()
		stopOnParent := context.AfterFunc(ctx, reqCancel)
		defer stopOnParent()

		var buf []byte
		err := chromedp.Run(reqCtx,
			chromedp.EmulateViewport(int64(c.opts.Width), int64(c.opts.Height)),
			chromedp.Navigate(pageURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(c.opts.Settle),
			chromedp.FullScreenshot(&buf, 100),
		)
		if err != nil {
			return nil, err
		}
		return buf, nil
	}
	return shoot, stop, nil
}
