package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestID reuses the caller's id from header or mints a new one, and
// echoes it on the response.
func RequestID(header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqID string
		if header != "" {
			reqID = c.Get(header)
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals(string(requestIDKey), reqID)
		c.SetUserContext(context.WithValue(c.UserContext(), requestIDKey, reqID))
		if header != "" {
			c.Set(header, reqID)
		}
		return c.Next()
	}
}

func GetRequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(string(requestIDKey)).(string); ok {
		return v
	}
	return ""
}
