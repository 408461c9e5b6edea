package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	accountModel "campusfee_backend/internals/features/users/user/model"
)

var (
	ErrNotFound                    = errors.New("record not found")
	ErrDuplicateEmail              = errors.New("email already registered")
	ErrDuplicateRegistrationNumber = errors.New("registration number already registered")
	ErrDuplicateTransactionID      = errors.New("transaction id already used")
)

/* ====================== ACCOUNT STORE ====================== */

// AccountPatch carries the admin-mutable account fields; nil means untouched.
type AccountPatch struct {
	TotalFees  *decimal.Decimal
	Name       *string
	Department *string
	Year       *int
	Semester   *int
	Password   *string
}

func (p AccountPatch) IsEmpty() bool {
	return p.TotalFees == nil && p.Name == nil && p.Department == nil &&
		p.Year == nil && p.Semester == nil && p.Password == nil
}

type AccountStore interface {
	FindAccountByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error)
	FindAccountByEmail(ctx context.Context, email string) (*accountModel.AccountModel, error)
	FindAccountByRegistrationNumber(ctx context.Context, rn string) (*accountModel.AccountModel, error)
	// FindAccountsByRole returns accounts newest first.
	FindAccountsByRole(ctx context.Context, role string) ([]accountModel.AccountModel, error)
	CountAccountsByRole(ctx context.Context, role string) (int64, error)
	SumTotalFeesByRole(ctx context.Context, role string) (decimal.Decimal, error)

	CreateAccount(ctx context.Context, acc *accountModel.AccountModel) error
	UpdateAccountFields(ctx context.Context, id uuid.UUID, patch AccountPatch) error
	DeleteAccountByID(ctx context.Context, id uuid.UUID) error

	// LockAccountByID reads the account and holds a write lock on it until
	// the surrounding transaction ends.
	LockAccountByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error)
}

/* ====================== LEDGER STORE ====================== */

// Payment lists are ordered by payment date, newest first.
type LedgerStore interface {
	FindPaymentsByStudentAndStatus(ctx context.Context, studentID uuid.UUID, status feeModel.PaymentStatus) ([]feeModel.PaymentModel, error)
	FindPaymentsByStudentsAndStatus(ctx context.Context, studentIDs []uuid.UUID, status feeModel.PaymentStatus) ([]feeModel.PaymentModel, error)
	FindPaymentsByStudent(ctx context.Context, studentID uuid.UUID) ([]feeModel.PaymentModel, error)
	FindPaymentByIDAndStudent(ctx context.Context, id, studentID uuid.UUID) (*feeModel.PaymentModel, error)

	CreatePayment(ctx context.Context, p *feeModel.PaymentModel) error
	DeletePaymentsByStudent(ctx context.Context, studentID uuid.UUID) (int64, error)

	CountPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (int64, error)
	SumPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (decimal.Decimal, error)
}

type Store interface {
	AccountStore
	LedgerStore

	// Transaction runs fn against a store bound to one unit of work; any
	// error returned by fn rolls every write back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
