package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// CORSMiddleware attaches the CORS headers to every response and
// answers preflight OPTIONS requests with an empty 204. The bundled
// cors middleware only emits the allow-methods/allow-headers pair on
// preflights, so this keeps the headers on regular responses too.
func CORSMiddleware(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
	c.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")

	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Next()
}
