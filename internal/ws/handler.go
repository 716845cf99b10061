package ws

import (
	"net/http"

	"dataitjobs/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

func NewHandler(hub *Hub, log *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger.OrNop(log)}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/dataset", h.HandleDatasetWS)
}

func (h *Handler) HandleDatasetWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", zap.Error(err))
			return
		}

		client := NewClient(h.hub, conn)
		if !h.hub.Register(client) {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
