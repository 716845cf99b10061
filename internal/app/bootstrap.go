package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dataitjobs/internal/config"
	"dataitjobs/internal/delivery/http/handler"
	"dataitjobs/internal/delivery/http/middleware"
	"dataitjobs/internal/delivery/http/routes"
	"dataitjobs/internal/pkg/jwt"
	"dataitjobs/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app over an existing container.
func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ErrorHandler: middleware.ErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and loads the
// dataset so the first request is served from memory. The returned cleanup
// stops the hub and closes the stores.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	snap := c.Store.Get(ctx)
	c.Logger.Info("dataset ready",
		zap.String("source", snap.Source),
		zap.Bool("synthetic", snap.Synthetic),
		zap.Uint64("generation", snap.Generation),
	)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(log.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}
	cfg := c.Config

	h := routes.Handlers{
		Health:    handler.NewHealthHandler(cfg.App.AppName, cfg.App.Environment),
		Dashboard: handler.NewDashboardHandler(c.Dashboard, c.Status),
		Pages:     handler.NewPageHandler(c.Dashboard, cfg.App.AppName),
		WS:        ws.NewHandler(c.Hub, c.Logger.Named("ws")),
		RateLimit: middleware.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}
	if c.AdminAuth != nil {
		h.Admin = handler.NewAdminHandler(c.AdminAuth, c.Store, c.Dashboard, c.Logger.Named("admin"))
		h.AdminAuth = middleware.NewAuthMiddleware(c.JWT, jwt.RoleAdmin)
	}

	routes.NewRegistry(h).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
