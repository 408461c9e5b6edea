// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	FeeRoute "campusfee_backend/internals/features/finance/fees/route"
	"campusfee_backend/internals/features/finance/fees/service"
)

func FinanceAdminRoutes(r fiber.Router, svc *service.Services) {
	FeeRoute.AdminFeeRoutes(r, svc)
}

func FinanceStudentRoutes(r fiber.Router, svc *service.Services) {
	FeeRoute.StudentFeeRoutes(r, svc)
}
