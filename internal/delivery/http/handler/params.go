package handler

import (
	"errors"
	"strconv"
	"strings"

	"dataitjobs/internal/delivery/http/middleware"
	"dataitjobs/internal/pkg/response"
	"dataitjobs/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// parseDashboardParams reads the shared dashboard filters. view=all turns
// off top-K truncation.
func parseDashboardParams(c fiber.Ctx) (usecase.DashboardParams, error) {
	month, err := parseQueryIntStrict(c, "month", 0)
	if err != nil {
		return usecase.DashboardParams{}, err
	}
	topK, err := parseQueryIntStrict(c, "top_k", 0)
	if err != nil {
		return usecase.DashboardParams{}, err
	}
	bins, err := parseQueryIntStrict(c, "bins", 0)
	if err != nil {
		return usecase.DashboardParams{}, err
	}

	return usecase.DashboardParams{
		Month:        month,
		JobTitle:     c.Query("job_title"),
		SkillType:    c.Query("skill_type"),
		Country:      c.Query("country"),
		ScheduleType: c.Query("schedule_type"),
		TopK:         topK,
		Bins:         bins,
		All:          strings.EqualFold(strings.TrimSpace(c.Query("view")), "all"),
	}, nil
}

func mapDashboardUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, usecase.ErrReloadInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Reload already in progress", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
