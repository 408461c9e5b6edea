package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/fees/repository"
	accountModel "campusfee_backend/internals/features/users/user/model"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// stepClock returns strictly increasing timestamps so ordering is deterministic.
func stepClock() func() time.Time {
	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	var n int64
	return func() time.Time {
		return base.Add(time.Duration(atomic.AddInt64(&n, 1)) * time.Minute)
	}
}

func newTestStore() *repository.MemoryStore {
	return repository.NewMemoryStoreWithClock(stepClock())
}

func seedStudent(t *testing.T, store repository.Store, usn string, fees int64) *accountModel.AccountModel {
	t.Helper()
	dept, year, sem, rn := "Computer Science", 3, 5, usn
	acc := &accountModel.AccountModel{
		Email:              usn + "@cambridge.edu.in",
		Password:           "hashed",
		Role:               accountModel.RoleStudent,
		Name:               "Student " + usn,
		Department:         &dept,
		Year:               &year,
		Semester:           &sem,
		RegistrationNumber: &rn,
		TotalFees:          dec(fees),
	}
	if err := store.CreateAccount(context.Background(), acc); err != nil {
		t.Fatalf("CreateAccount(%s): %v", usn, err)
	}
	return acc
}

func seedAdmin(t *testing.T, store repository.Store) *accountModel.AccountModel {
	t.Helper()
	acc := &accountModel.AccountModel{
		Email:    "admin@cambridge.edu.in",
		Password: "hashed",
		Role:     accountModel.RoleAdmin,
		Name:     "Admin",
	}
	if err := store.CreateAccount(context.Background(), acc); err != nil {
		t.Fatalf("CreateAccount(admin): %v", err)
	}
	return acc
}

// seedPayment writes a ledger row directly, bypassing the writer.
func seedPayment(t *testing.T, store repository.Store, studentID uuid.UUID, amount int64, status feeModel.PaymentStatus) {
	t.Helper()
	p := &feeModel.PaymentModel{
		StudentID:     studentID,
		Amount:        dec(amount),
		PaymentMethod: feeModel.PaymentMethodCash,
		TransactionID: "SEED-" + uuid.NewString(),
		Status:        status,
	}
	if err := store.CreatePayment(context.Background(), p); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
}

func assertKind(t *testing.T, err error, want *FeeError) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("error: got %v, want kind %s", err, want.Kind)
	}
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: got %s, want %d", name, got, want)
	}
}

// failingStore fails payment inserts inside transactions.
type failingStore struct {
	*repository.MemoryStore
	createErr error
}

func (f *failingStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return f.MemoryStore.Transaction(ctx, func(tx repository.Store) error {
		return fn(&failingTx{Store: tx, createErr: f.createErr})
	})
}

type failingTx struct {
	repository.Store
	createErr error
}

func (f *failingTx) CreatePayment(ctx context.Context, p *feeModel.PaymentModel) error {
	return f.createErr
}

// brokenLedgerStore fails the ledger aggregate used by the dashboard.
type brokenLedgerStore struct {
	*repository.MemoryStore
}

func (b *brokenLedgerStore) SumPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("connection reset")
}

type countingHasher struct {
	calls int
}

func (h *countingHasher) Hash(plain string) (string, error) {
	h.calls++
	return "hashed:" + plain, nil
}
