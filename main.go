package main

import (
	"log"
	"time"

	"github.com/DhavalCK/actify/internal/config"
	"github.com/DhavalCK/actify/internal/database"
	"github.com/DhavalCK/actify/internal/handlers"
	"github.com/DhavalCK/actify/internal/routes"
	"github.com/DhavalCK/actify/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	services.InitPush(cfg.FCMServiceAccount)
	services.Init(database.DB, time.Now)
	services.Recompute.Broadcaster = handlers.WS
	services.Recompute.Notify = handlers.CreateNotification

	app := fiber.New()
	routes.Setup(app)

	log.Printf("Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
