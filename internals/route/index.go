// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"campusfee_backend/internals/configs"
	"campusfee_backend/internals/constants"
	"campusfee_backend/internals/features/finance/fees/repository"
	feeService "campusfee_backend/internals/features/finance/fees/service"
	authService "campusfee_backend/internals/features/users/auth/service"
	authMiddleware "campusfee_backend/internals/middlewares/auth"
	"campusfee_backend/internals/logger"
	routeDetails "campusfee_backend/internals/route/details"
)

var startTime = time.Now()

// Deps adalah semua yang dibutuhkan untuk memasang route.
type Deps struct {
	Store  repository.Store
	Config configs.Config
	Hasher feeService.PasswordHasher
	// Tokens boleh nil; dibuat dari Config.JWT.
	Tokens *authService.TokenService
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	tokens := d.Tokens
	if tokens == nil {
		tokens = authService.NewTokenService(d.Config.JWT.Secret, d.Config.JWT.TTL)
	}
	fees := feeService.NewServices(d.Store, d.Hasher, d.Config.Fees.EmailSuffix)
	auth := authService.NewAuthService(d.Store, tokens)

	protect := authMiddleware.AuthJWT(authMiddleware.Options{
		Tokens:   tokens,
		Accounts: d.Store,
	})

	logger.Log.Info("Setting up BaseRoutes...")
	BaseRoutes(app, d.Store, d.Config)

	api := app.Group("/api")

	logger.Log.Info("Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, auth, protect)

	// ===================== ADMIN =====================
	admin := api.Group("/admin",
		protect,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this resource"), constants.AdminOnly...),
	)

	// ===================== STUDENT =====================
	student := api.Group("/student",
		protect,
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("this resource"), constants.StudentOnly...),
	)

	logger.Log.Info("Mounting Finance routes...")
	routeDetails.FinanceAdminRoutes(admin, fees)
	routeDetails.FinanceStudentRoutes(student, fees)
}
