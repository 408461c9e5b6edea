package controller

import (
	"github.com/gofiber/fiber/v2"

	"campusfee_backend/internals/features/finance/fees/dto"
	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/fees/service"
	helper "campusfee_backend/internals/helpers"
)

type StudentController struct {
	Writer *service.LedgerWriter
	Reader *service.BalanceReader
}

func NewStudentController(writer *service.LedgerWriter, reader *service.BalanceReader) *StudentController {
	return &StudentController{Writer: writer, Reader: reader}
}

// GET /api/student/fees
func (sc *StudentController) GetFeesDetails(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sb, err := sc.Reader.StudentBalance(c.UserContext(), studentID)
	if err != nil {
		return respondError(c, err, "Server error while fetching fees details")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"feesDetails": sb.Balance,
	})
}

// POST /api/student/pay
func (sc *StudentController) MakePayment(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.PayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Please provide a valid amount", err)
	}
	if req.Amount == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Please provide a valid amount", nil)
	}
	amount, err := service.ParseAmount(*req.Amount)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Please provide a valid amount", nil)
	}

	receipt, err := sc.Writer.RecordPayment(c.UserContext(), service.PaymentRequest{
		StudentID: studentID,
		Amount:    amount,
		Method:    feeModel.PaymentMethod(req.PaymentMethod),
		Meta: map[string]any{
			"channel":   "student-app",
			"requestId": c.Locals("reqid"),
			"ip":        c.IP(),
		},
	})
	if err != nil {
		return respondError(c, err, "Server error while processing payment")
	}

	return helper.JsonCreated(c, "Payment successful", fiber.Map{
		"payment":        receipt.Payment,
		"updatedBalance": dto.NewBalanceSummary(receipt.Balance),
	})
}

// GET /api/student/payment-history
func (sc *StudentController) GetPaymentHistory(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	payments, err := sc.Reader.PaymentHistory(c.UserContext(), studentID)
	if err != nil {
		return respondError(c, err, "Server error while fetching payment history")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"count":    len(payments),
		"payments": payments,
	})
}

// GET /api/student/payment/:id
func (sc *StudentController) GetPaymentDetails(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paymentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Payment not found", nil)
	}

	p, student, err := sc.Reader.Payment(c.UserContext(), studentID, paymentID)
	if err != nil {
		return respondError(c, err, "Server error while fetching payment details")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"payment": dto.NewPaymentDetailResponse(*p, *student),
	})
}
