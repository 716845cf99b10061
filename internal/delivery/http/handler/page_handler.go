package handler

import (
	"io"
	"strings"

	"dataitjobs/internal/delivery/http/middleware"
	httpresponse "dataitjobs/internal/delivery/http/response"
	"dataitjobs/internal/render"
	"dataitjobs/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// PageHandler serves the browser dashboard, one route per menu entry.
type PageHandler struct {
	uc    usecase.DashboardUsecase
	title string
}

func NewPageHandler(uc usecase.DashboardUsecase, appName string) *PageHandler {
	return &PageHandler{uc: uc, title: appName}
}

func (h *PageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Index)
	r.Get("/:page", h.Page)
}

func (h *PageHandler) Index(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusFound).To("/dashboard/" + usecase.PageOverview)
}

func (h *PageHandler) Page(c fiber.Ctx) error {
	page := strings.ToLower(strings.TrimSpace(c.Params("page")))
	if !usecase.IsPage(page) {
		return middleware.NewAppError(fiber.StatusNotFound, "Unknown dashboard page", usecase.Pages, nil)
	}

	p, err := parseDashboardParams(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	view, err := h.uc.Page(c.Context(), page, p)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}

	title := view.Title
	if h.title != "" {
		title = h.title + " | " + view.Title
	}
	return httpresponse.HTML(c, fiber.StatusOK, func(w io.Writer) error {
		return render.Page(w, title, view.Charts)
	})
}
