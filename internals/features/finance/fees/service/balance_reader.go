package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/fees/repository"
	accountModel "campusfee_backend/internals/features/users/user/model"
)

type StudentBalance struct {
	Student accountModel.AccountModel
	Balance Balance
}

// BalanceReader serves every read-side view of a balance. All of them go
// through ComputeBalance over the success ledger, so the student view, the
// admin detail and the admin roster always agree.
type BalanceReader struct {
	store repository.Store
}

func NewBalanceReader(store repository.Store) *BalanceReader {
	return &BalanceReader{store: store}
}

func (r *BalanceReader) loadStudent(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error) {
	acc, err := r.store.FindAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Student not found")
		}
		return nil, storeError("Failed to load student", err)
	}
	if !acc.IsStudent() {
		return nil, notFound("Student not found")
	}
	return acc, nil
}

func (r *BalanceReader) StudentBalance(ctx context.Context, studentID uuid.UUID) (*StudentBalance, error) {
	student, err := r.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	ledger, err := r.store.FindPaymentsByStudentAndStatus(ctx, studentID, feeModel.PaymentStatusSuccess)
	if err != nil {
		return nil, storeError("Failed to load payments", err)
	}
	return &StudentBalance{
		Student: *student,
		Balance: ComputeBalance(student.TotalFees, ledger),
	}, nil
}

// Roster returns every student, newest first, with their balance. The
// ledger is read in one batch for the whole roster.
func (r *BalanceReader) Roster(ctx context.Context) ([]StudentBalance, error) {
	students, err := r.store.FindAccountsByRole(ctx, accountModel.RoleStudent)
	if err != nil {
		return nil, storeError("Failed to load students", err)
	}
	if len(students) == 0 {
		return []StudentBalance{}, nil
	}

	ids := make([]uuid.UUID, len(students))
	for i := range students {
		ids[i] = students[i].ID
	}
	payments, err := r.store.FindPaymentsByStudentsAndStatus(ctx, ids, feeModel.PaymentStatusSuccess)
	if err != nil {
		return nil, storeError("Failed to load payments", err)
	}
	byStudent := make(map[uuid.UUID][]feeModel.PaymentModel, len(students))
	for _, p := range payments {
		byStudent[p.StudentID] = append(byStudent[p.StudentID], p)
	}

	out := make([]StudentBalance, len(students))
	for i, s := range students {
		out[i] = StudentBalance{
			Student: s,
			Balance: ComputeBalance(s.TotalFees, byStudent[s.ID]),
		}
	}
	return out, nil
}

// PaymentHistory lists every record of the student regardless of status.
func (r *BalanceReader) PaymentHistory(ctx context.Context, studentID uuid.UUID) ([]feeModel.PaymentModel, error) {
	if _, err := r.loadStudent(ctx, studentID); err != nil {
		return nil, err
	}
	payments, err := r.store.FindPaymentsByStudent(ctx, studentID)
	if err != nil {
		return nil, storeError("Failed to load payments", err)
	}
	if payments == nil {
		payments = []feeModel.PaymentModel{}
	}
	return payments, nil
}

// Payment returns one record only when it belongs to studentID.
func (r *BalanceReader) Payment(ctx context.Context, studentID, paymentID uuid.UUID) (*feeModel.PaymentModel, *accountModel.AccountModel, error) {
	student, err := r.loadStudent(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	p, err := r.store.FindPaymentByIDAndStudent(ctx, paymentID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, notFound("Payment not found")
		}
		return nil, nil, storeError("Failed to load payment", err)
	}
	return p, student, nil
}
