package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/fees/service"
	accountModel "campusfee_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type AddStudentRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	USN        string   `json:"usn"`
	Department string   `json:"department"`
	Year       int      `json:"year"`
	Semester   int      `json:"semester"`
	TotalFees  *float64 `json:"totalFees"`
}

func (r AddStudentRequest) ToNewStudent() service.NewStudent {
	return service.NewStudent{
		Name:               r.Name,
		Email:              r.Email,
		Password:           r.Password,
		RegistrationNumber: r.USN,
		Department:         r.Department,
		Year:               r.Year,
		Semester:           r.Semester,
		TotalFees:          money(r.TotalFees),
	}
}

// UpdateFeesRequest: semua field opsional, yang nil tidak diubah.
type UpdateFeesRequest struct {
	TotalFees  *float64 `json:"totalFees"`
	Name       *string  `json:"name"`
	Department *string  `json:"department"`
	Year       *int     `json:"year"`
	Semester   *int     `json:"semester"`
}

func (r UpdateFeesRequest) ToStudentUpdate() service.StudentUpdate {
	out := service.StudentUpdate{
		Name:       r.Name,
		Department: r.Department,
		Year:       r.Year,
		Semester:   r.Semester,
	}
	if r.TotalFees != nil {
		fees := money(r.TotalFees)
		out.TotalFees = &fees
	}
	return out
}

type PayRequest struct {
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"paymentMethod"`
}

func money(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

/* ===================== RESPONSES ===================== */

// StudentResponse is the account plus its balance, used by the admin views.
type StudentResponse struct {
	accountModel.AccountModel
	AmountPaid     decimal.Decimal         `json:"amountPaid"`
	AmountDue      decimal.Decimal         `json:"amountDue"`
	PaymentHistory []feeModel.PaymentModel `json:"paymentHistory"`
}

func NewStudentResponse(sb service.StudentBalance) StudentResponse {
	return StudentResponse{
		AccountModel:   sb.Student,
		AmountPaid:     sb.Balance.AmountPaid,
		AmountDue:      sb.Balance.AmountDue,
		PaymentHistory: sb.Balance.PaymentHistory,
	}
}

func NewStudentResponses(list []service.StudentBalance) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for _, sb := range list {
		out = append(out, NewStudentResponse(sb))
	}
	return out
}

type BalanceSummary struct {
	TotalFees  decimal.Decimal `json:"totalFees"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	AmountDue  decimal.Decimal `json:"amountDue"`
}

func NewBalanceSummary(b service.Balance) BalanceSummary {
	return BalanceSummary{TotalFees: b.TotalFees, AmountPaid: b.AmountPaid, AmountDue: b.AmountDue}
}

type StudentSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department *string   `json:"department,omitempty"`
	Year       *int      `json:"year,omitempty"`
}

type PaymentDetailResponse struct {
	feeModel.PaymentModel
	Student StudentSummary `json:"student"`
}

func NewPaymentDetailResponse(p feeModel.PaymentModel, s accountModel.AccountModel) PaymentDetailResponse {
	return PaymentDetailResponse{
		PaymentModel: p,
		Student: StudentSummary{
			ID:         s.ID,
			Name:       s.Name,
			Email:      s.Email,
			Department: s.Department,
			Year:       s.Year,
		},
	}
}
