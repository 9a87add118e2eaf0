package handlers

import (
	"time"

	"github.com/DhavalCK/actify/internal/datekey"
	"github.com/DhavalCK/actify/internal/middleware"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/DhavalCK/actify/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetMotivation returns today's motivational text for the authenticated
// user, generating it on first read. ?force=true regenerates.
func GetMotivation(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	dateKey := datekey.TodayKey(time.Now)
	force := c.QueryBool("force")

	record, err := services.Motivation.Get(userID, dateKey, force)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate motivation",
		})
	}
	if record == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing user identity",
		})
	}

	return c.JSON(models.MotivationResponse{
		Text:        record.Text,
		Date:        record.DateKey,
		GeneratedAt: record.GeneratedAt,
	})
}

// GenerateMotivation is the generation boundary: POST-only, body carries
// {uid, dateKey, force?}. Missing fields are a 400.
func GenerateMotivation(c *fiber.Ctx) error {
	var req models.GenerateMotivationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "uid and dateKey required",
		})
	}

	if req.UID == "" || req.DateKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "uid and dateKey required",
		})
	}

	userID, err := uuid.Parse(req.UID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid uid",
		})
	}

	record, err := services.Motivation.Get(userID, req.DateKey, req.Force)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate motivation",
		})
	}
	if record == nil {
		// The zero UUID parses but names nobody.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "uid and dateKey required",
		})
	}

	return c.JSON(models.MotivationResponse{
		Text:        record.Text,
		Date:        record.DateKey,
		GeneratedAt: record.GeneratedAt,
	})
}
