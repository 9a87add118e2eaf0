package handlers

import (
	"errors"
	"time"

	"github.com/DhavalCK/actify/internal/middleware"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/DhavalCK/actify/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateAction records a new pending action and triggers the recompute
// cascade once the write commits.
func CreateAction(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	action, err := services.Actions.Add(userID, req.Title)
	if errors.Is(err, services.ErrEmptyTitle) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create action",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(action)
}

func DeleteAction(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	actionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid action ID",
		})
	}

	err = services.Actions.Remove(userID, actionID)
	if errors.Is(err, services.ErrActionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Action not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete action",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func ToggleAction(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	actionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid action ID",
		})
	}

	action, err := services.Actions.Toggle(userID, actionID)
	if errors.Is(err, services.ErrActionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Action not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle action",
		})
	}

	return c.JSON(action)
}

// GetActions returns a page of actions ordered newest first. The ?before=
// cursor (RFC3339) fetches older pages.
func GetActions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	before, ok := parseBefore(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid before cursor",
		})
	}

	page, err := services.Actions.List(userID, before)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load actions",
		})
	}

	return c.JSON(page)
}

// GetHistory returns a page of completed actions ordered by completion time.
func GetHistory(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	before, ok := parseBefore(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid before cursor",
		})
	}

	page, err := services.Actions.History(userID, before)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load history",
		})
	}

	return c.JSON(page)
}

func parseBefore(c *fiber.Ctx) (*time.Time, bool) {
	raw := c.Query("before")
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
