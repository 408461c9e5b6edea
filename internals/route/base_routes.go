package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"campusfee_backend/internals/configs"
	"campusfee_backend/internals/features/finance/fees/repository"
)

func BaseRoutes(app *fiber.App, store repository.Store, cfg configs.Config) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Campus fee management API is running")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := store.Ping(ctx); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"driver":         cfg.DB.Driver,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    cfg.App.Env,
		})
	})
}
