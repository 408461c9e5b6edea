// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "campusfee_backend/internals/features/users/auth/controller"
	"campusfee_backend/internals/features/users/auth/service"
	rateLimiter "campusfee_backend/internals/middlewares"
)

// AuthRoutes: /login publik, sisanya di belakang middleware auth yang dikirim caller.
func AuthRoutes(r fiber.Router, auth *service.AuthService, protect fiber.Handler) {
	authController := controller.NewAuthController(auth)

	baseAuth := r.Group("/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	baseAuth.Get("/me", protect, authController.Me)
	baseAuth.Put("/change-password", protect, authController.ChangePassword)
}
