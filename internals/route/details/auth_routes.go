package details

import (
	"github.com/gofiber/fiber/v2"

	AuthRoute "campusfee_backend/internals/features/users/auth/route"
	authService "campusfee_backend/internals/features/users/auth/service"
)

func AuthRoutes(r fiber.Router, auth *authService.AuthService, protect fiber.Handler) {
	AuthRoute.AuthRoutes(r, auth, protect)
}
