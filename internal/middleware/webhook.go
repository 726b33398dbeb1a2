package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// WebhookAuthMiddleware validates the shared secret on gateway callbacks.
// When no secret is configured the callback is accepted as-is; not every
// gateway environment signs its webhooks.
func WebhookAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		if c.Get("X-Webhook-Secret") != secret {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid webhook secret")
		}

		return c.Next()
	}
}
