package routes

import (
	"github.com/DhavalCK/actify/internal/handlers"
	"github.com/DhavalCK/actify/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	// Generation boundary: POST-only, uid carried in the body
	api.Post("/motivation/generate", handlers.GenerateMotivation)
	api.All("/motivation/generate", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"error": "Method not allowed",
		})
	})

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)

	actions := protected.Group("/actions")
	actions.Get("/", handlers.GetActions)
	actions.Post("/", handlers.CreateAction)
	actions.Delete("/:id", handlers.DeleteAction)
	actions.Post("/:id/toggle", handlers.ToggleAction)

	protected.Get("/history", handlers.GetHistory)

	protected.Get("/dashboard", handlers.GetDashboard)
	protected.Get("/performance/:dateKey", handlers.GetPerformance)

	protected.Get("/stats", handlers.GetStats)
	protected.Post("/stats/recalculate", handlers.RecalculateStats)

	protected.Get("/motivation", handlers.GetMotivation)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllRead)

	// Device token for push notifications
	protected.Post("/device-token", handlers.RegisterDeviceToken)

	// WebSocket for live dashboard updates
	app.Use("/ws", handlers.WebSocketUpgrade())
	app.Get("/ws/dashboard", websocket.New(handlers.HandleWebSocket))
}
