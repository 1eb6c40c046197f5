package handlers

import (
	"time"

	"github.com/formpulse/survey-intake-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Ping reports liveness. No validation or storage is involved.
func Ping(c *fiber.Ctx) error {
	return c.JSON(models.PingResponse{
		Status:  "ok",
		Message: "API is alive",
		UTCTime: time.Now().UTC().Format(time.RFC3339),
	})
}
