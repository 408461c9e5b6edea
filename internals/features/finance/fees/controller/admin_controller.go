package controller

import (
	"github.com/gofiber/fiber/v2"

	"campusfee_backend/internals/features/finance/fees/dto"
	"campusfee_backend/internals/features/finance/fees/service"
	helper "campusfee_backend/internals/helpers"
)

type AdminController struct {
	Provisioner *service.Provisioner
	Reader      *service.BalanceReader
	Reporter    *service.Reporter
}

func NewAdminController(prov *service.Provisioner, reader *service.BalanceReader, reporter *service.Reporter) *AdminController {
	return &AdminController{Provisioner: prov, Reader: reader, Reporter: reporter}
}

// POST /api/admin/add-student
func (ac *AdminController) AddStudent(c *fiber.Ctx) error {
	var req dto.AddStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	student, err := ac.Provisioner.CreateStudent(c.UserContext(), req.ToNewStudent())
	if err != nil {
		return respondError(c, err, "Server error while creating student")
	}

	return helper.JsonCreated(c, "Student account created successfully", fiber.Map{
		"student": student,
	})
}

// GET /api/admin/students
func (ac *AdminController) GetAllStudents(c *fiber.Ctx) error {
	roster, err := ac.Reader.Roster(c.UserContext())
	if err != nil {
		return respondError(c, err, "Server error while fetching students")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"count":    len(roster),
		"students": dto.NewStudentResponses(roster),
	})
}

// GET /api/admin/students/:id
func (ac *AdminController) GetStudent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found", nil)
	}

	sb, err := ac.Reader.StudentBalance(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Server error while fetching student")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"student": dto.NewStudentResponse(*sb),
	})
}

// PATCH /api/admin/update-fees/:id
func (ac *AdminController) UpdateStudentFees(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found", nil)
	}

	var req dto.UpdateFeesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	student, err := ac.Provisioner.UpdateStudent(c.UserContext(), id, req.ToStudentUpdate())
	if err != nil {
		return respondError(c, err, "Server error while updating student")
	}

	return helper.JsonOK(c, "Student information updated successfully", fiber.Map{
		"student": student,
	})
}

// DELETE /api/admin/students/:id
func (ac *AdminController) DeleteStudent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found", nil)
	}

	removed, err := ac.Provisioner.DeleteStudent(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Server error while deleting student")
	}

	return helper.JsonOK(c, "Student account deleted successfully", fiber.Map{
		"paymentsRemoved": removed,
	})
}

// GET /api/admin/dashboard-stats
func (ac *AdminController) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := ac.Reporter.DashboardStats(c.UserContext())
	if err != nil {
		return respondError(c, err, "Server error while fetching stats")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"stats": stats,
	})
}
