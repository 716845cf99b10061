package response

import "github.com/gofiber/fiber/v3"

// LocalRequestID is the fiber Locals key holding the request id set by the
// access log middleware. It is echoed in every envelope.
const LocalRequestID = "request_id"

type SemanticResponse struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageTooManyRequests     = "too many requests"
	MessageInternalServerError = "internal server error"
	MessageServiceUnavailable  = "service unavailable"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	rid, _ := c.Locals(LocalRequestID).(string)
	return c.Status(st).JSON(SemanticResponse{
		Status:    st,
		Message:   normalizeMessage(message, st),
		Data:      data,
		RequestID: rid,
	})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return defaultMessageForStatus(status)
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusTooManyRequests:
		return MessageTooManyRequests
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
