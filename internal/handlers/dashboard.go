package handlers

import (
	"time"

	"github.com/DhavalCK/actify/internal/datekey"
	"github.com/DhavalCK/actify/internal/middleware"
	"github.com/DhavalCK/actify/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns today's completion ratio and the streak state.
func GetDashboard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	todayKey := datekey.TodayKey(time.Now)

	perf, err := services.Performance.GetRecord(userID, todayKey)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load performance",
		})
	}

	streak, err := services.Streak.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load streak",
		})
	}

	ratio, completed, total := 0, 0, 0
	if perf != nil {
		ratio, completed, total = perf.Ratio, perf.Completed, perf.Total
	}

	current, best := 0, 0
	if streak != nil {
		current, best = streak.Current, streak.Best
	}

	return c.JSON(fiber.Map{
		"date":      todayKey,
		"ratio":     ratio,
		"completed": completed,
		"total":     total,
		"current":   current,
		"best":      best,
	})
}

// GetPerformance returns the stored record for one day.
func GetPerformance(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	dateKey := c.Params("dateKey")

	if _, _, err := datekey.DayBounds(dateKey); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date key, expected YYYY-MM-DD",
		})
	}

	record, err := services.Performance.GetRecord(userID, dateKey)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load performance",
		})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No performance record for that day",
		})
	}

	return c.JSON(record)
}
