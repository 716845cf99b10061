package routes

import (
	"dataitjobs/internal/delivery/http/handler"
	"dataitjobs/internal/delivery/http/middleware"
	"dataitjobs/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	dashboard *handler.DashboardHandler
	pages     *handler.PageHandler
	admin     *handler.AdminHandler
	ws        *ws.Handler
	adminAuth *middleware.AuthMiddleware
	rateLimit *middleware.RateLimitMiddleware
}

type Handlers struct {
	Health    *handler.HealthHandler
	Dashboard *handler.DashboardHandler
	Pages     *handler.PageHandler
	Admin     *handler.AdminHandler
	WS        *ws.Handler
	AdminAuth *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{
		health:    h.Health,
		dashboard: h.Dashboard,
		pages:     h.Pages,
		admin:     h.Admin,
		ws:        h.WS,
		adminAuth: h.AdminAuth,
		rateLimit: h.RateLimit,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerPages(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerPages(app *fiber.App) {
	if r.pages == nil {
		return
	}
	r.pages.RegisterRoutes(app.Group("/dashboard", r.rateLimit.Middleware()))
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		r.ws.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api", r.rateLimit.Middleware())
	RegisterV1(api.Group("/v1"), r)
}
