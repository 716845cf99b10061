package middleware

import (
	"time"

	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = response.LocalRequestID
)

type AccessLogMiddleware struct {
	logger *zap.Logger
}

func NewAccessLogMiddleware(log *zap.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{logger: logger.OrNop(log)}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			if appErr, ok := err.(*AppError); ok {
				status = appErr.StatusCode
			} else if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		m.logger.Info("http access",
			zap.String("rid", rid),
			zap.String("ip", c.IP()),
			zap.String("host", c.Hostname()),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("req_bytes", c.Request().Header.ContentLength()),
			zap.Int("resp_bytes", len(c.Response().Body())),
			zap.String("ua", c.Get("User-Agent")),
			zap.String("referer", c.Get("Referer")),
		)

		return err
	}
}
