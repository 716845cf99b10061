package handler

import (
	"context"
	"io"

	"dataitjobs/internal/analytics"
	"dataitjobs/internal/delivery/http/dto"
	"dataitjobs/internal/delivery/http/middleware"
	httpresponse "dataitjobs/internal/delivery/http/response"
	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/pkg/response"
	"dataitjobs/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type datasetReloader interface {
	Reload(ctx context.Context) (*usecase.Snapshot, error)
}

type AdminHandler struct {
	auth      usecase.AdminAuthUsecase
	reloader  datasetReloader
	dashboard usecase.DashboardUsecase
	logger    *zap.Logger
}

func NewAdminHandler(auth usecase.AdminAuthUsecase, reloader datasetReloader, dashboard usecase.DashboardUsecase, log *zap.Logger) *AdminHandler {
	return &AdminHandler{auth: auth, reloader: reloader, dashboard: dashboard, logger: logger.OrNop(log)}
}

// RegisterRoutes leaves login open and guards everything else with auth.
func (h *AdminHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}
	r.Post("/login", h.Login)
	r.Post("/dataset/reload", auth, h.Reload)
	r.Get("/export/top-skills.csv", auth, h.ExportTopSkills)
}

func (h *AdminHandler) Login(c fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	tok, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("admin login rejected", zap.String("username", req.Username), zap.String("ip", c.IP()))
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AdminLoginResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresAt:   tok.ExpiresAt,
	})
}

func (h *AdminHandler) Reload(c fiber.Ctx) error {
	snap, err := h.reloader.Reload(c.Context())
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	tables := snap.Data.Tables()
	h.logger.Info("dataset reloaded by admin",
		zap.Any("username", c.Locals(middleware.CtxUsernameKey)),
		zap.Uint64("generation", snap.Generation),
	)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.DatasetReloadResponse{
		Generation: snap.Generation,
		Source:     snap.Source,
		Synthetic:  snap.Synthetic,
		Warning:    snap.Warning,
		Jobs:       len(tables.Jobs),
		Skills:     len(tables.Skills),
		Links:      len(tables.Links),
		LoadedAt:   snap.LoadedAt,
	})
}

func (h *AdminHandler) ExportTopSkills(c fiber.Ctx) error {
	p, err := parseDashboardParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	ctx := c.Context()
	return httpresponse.CSV(c, analytics.ExportFileName, func(w io.Writer) error {
		if err := h.dashboard.ExportTopSkills(ctx, w, p); err != nil {
			return mapDashboardUsecaseError(err)
		}
		return nil
	})
}
