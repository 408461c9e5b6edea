// file: internals/features/finance/fees/route/fees_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	feeController "campusfee_backend/internals/features/finance/fees/controller"
	"campusfee_backend/internals/features/finance/fees/service"
)

// AdminFeeRoutes dipasang di group yang sudah lewat AuthJWT + OnlyRoles(admin).
func AdminFeeRoutes(r fiber.Router, svc *service.Services) {
	ctl := feeController.NewAdminController(svc.Provisioner, svc.Reader, svc.Reporter)

	r.Post("/add-student", ctl.AddStudent)
	r.Patch("/update-fees/:id", ctl.UpdateStudentFees)
	r.Get("/dashboard-stats", ctl.GetDashboardStats)

	students := r.Group("/students")
	{
		students.Get("/", ctl.GetAllStudents)
		students.Get("/:id", ctl.GetStudent)
		students.Delete("/:id", ctl.DeleteStudent)
	}
}

// StudentFeeRoutes: identitas mahasiswa selalu dari token, tidak pernah dari path.
func StudentFeeRoutes(r fiber.Router, svc *service.Services) {
	ctl := feeController.NewStudentController(svc.Writer, svc.Reader)

	r.Get("/fees", ctl.GetFeesDetails)
	r.Post("/pay", ctl.MakePayment)
	r.Get("/payment-history", ctl.GetPaymentHistory)
	r.Get("/payment/:id", ctl.GetPaymentDetails)
}
