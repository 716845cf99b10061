package handler

import (
	"dataitjobs/internal/delivery/http/middleware"
	"dataitjobs/internal/pkg/response"
	"dataitjobs/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc     usecase.DashboardUsecase
	status usecase.StatusUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase, status usecase.StatusUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc, status: status}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/filters", h.Filters)
	r.Get("/overview", h.Overview)
	r.Get("/skills", h.Skills)
	r.Get("/trends", h.Trends)
	r.Get("/geography", h.Geography)
	r.Get("/status", h.Status)
}

func (h *DashboardHandler) Filters(c fiber.Ctx) error {
	data, err := h.uc.Filters(c.Context())
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *DashboardHandler) Overview(c fiber.Ctx) error {
	p, err := parseDashboardParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	data, err := h.uc.Overview(c.Context(), p)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *DashboardHandler) Skills(c fiber.Ctx) error {
	p, err := parseDashboardParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	data, err := h.uc.Skills(c.Context(), p)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *DashboardHandler) Trends(c fiber.Ctx) error {
	p, err := parseDashboardParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	data, err := h.uc.Trends(c.Context(), p)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *DashboardHandler) Geography(c fiber.Ctx) error {
	p, err := parseDashboardParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	data, err := h.uc.Geography(c.Context(), p)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *DashboardHandler) Status(c fiber.Ctx) error {
	if h.status == nil {
		return fiber.ErrServiceUnavailable
	}
	data, err := h.status.GetStatus(c.Context())
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
