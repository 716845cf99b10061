package handler

import (
	"dataitjobs/internal/delivery/http/dto"
	"dataitjobs/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	service string
	env     string
}

func NewHealthHandler(service, env string) *HealthHandler {
	return &HealthHandler{service: service, env: env}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.HealthResponse{
		Status:  "ok",
		Service: h.service,
		Env:     h.env,
	})
}
