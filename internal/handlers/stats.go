package handlers

import (
	"github.com/DhavalCK/actify/internal/middleware"
	"github.com/DhavalCK/actify/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetStats returns the aggregate summary, building it from a full rescan
// when no document exists yet.
func GetStats(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	stats, err := services.Stats.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load stats",
		})
	}

	return c.JSON(stats)
}

// RecalculateStats forces the full-rescan reconciliation path, correcting
// any drift accumulated by the incremental updates.
func RecalculateStats(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	stats, err := services.Stats.RecalculateAll(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate stats",
		})
	}

	return c.JSON(stats)
}
