// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"campusfee_backend/internals/features/finance/fees/repository"
	authService "campusfee_backend/internals/features/users/auth/service"
	"campusfee_backend/internals/logger"
)

type Options struct {
	Tokens   *authService.TokenService
	Accounts repository.AccountStore
}

// AuthJWT memverifikasi bearer token lalu memastikan akunnya masih ada.
// Akun yang sudah dihapus admin ditolak walau tokennya belum expired.
func AuthJWT(opts Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}

		claims, err := opts.Tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, authService.ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token")
		}

		acc, err := opts.Accounts.FindAccountByID(c.UserContext(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			logger.Log.Error("auth: account lookup failed",
				zap.String("user_id", claims.UserID.String()),
				zap.Error(err),
			)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		storeIdentityToLocals(c, acc)
		return c.Next()
	}
}
