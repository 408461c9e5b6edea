package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/fees/repository"
	"campusfee_backend/internals/logger"
)

type PaymentRequest struct {
	StudentID uuid.UUID
	Amount    decimal.Decimal
	Method    feeModel.PaymentMethod
	// Meta is stored with the record and never affects the balance.
	Meta map[string]any
}

type PaymentReceipt struct {
	Payment feeModel.PaymentModel
	Balance Balance
}

// LedgerWriter is the only path that creates payment records.
type LedgerWriter struct {
	store    repository.Store
	locks    *studentLocks
	now      func() time.Time
	newTxnID func() (string, error)
}

type LedgerOption func(*LedgerWriter)

func WithClock(now func() time.Time) LedgerOption {
	return func(w *LedgerWriter) { w.now = now }
}

func WithTransactionIDs(gen func() (string, error)) LedgerOption {
	return func(w *LedgerWriter) { w.newTxnID = gen }
}

func NewLedgerWriter(store repository.Store, opts ...LedgerOption) *LedgerWriter {
	w := &LedgerWriter{
		store:    store,
		locks:    newStudentLocks(),
		now:      func() time.Time { return time.Now().UTC() },
		newTxnID: NewTransactionID,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewTransactionID returns "TXN" followed by a time-ordered UUIDv7 in upper hex.
func NewTransactionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return "TXN" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")), nil
}

// RecordPayment validates the amount against the freshly computed due and
// appends one success record. Writes for the same student are serialized in
// process, and the account row is locked for the duration of the store
// transaction so concurrent processes cannot overpay either.
func (w *LedgerWriter) RecordPayment(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error) {
	method := req.Method
	if method == "" {
		method = feeModel.PaymentMethodMock
	}
	if !method.Valid() {
		return nil, validationError("Invalid payment method", map[string]string{
			"paymentMethod": "must be one of mock, cash, bank_transfer, razorpay, stripe",
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock := w.locks.lock(req.StudentID)
	defer unlock()

	var receipt *PaymentReceipt
	err := w.store.Transaction(ctx, func(tx repository.Store) error {
		student, err := tx.LockAccountByID(ctx, req.StudentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound("Student not found")
			}
			return storeError("Failed to load student", err)
		}
		if !student.IsStudent() {
			return notFound("Student not found")
		}

		ledger, err := tx.FindPaymentsByStudentAndStatus(ctx, student.ID, feeModel.PaymentStatusSuccess)
		if err != nil {
			return storeError("Failed to load payments", err)
		}
		current := ComputeBalance(student.TotalFees, ledger)
		if err := ValidatePaymentRequest(req.Amount, current.AmountDue); err != nil {
			return err
		}

		txnID, err := w.newTxnID()
		if err != nil {
			return writeError("Failed to generate transaction id", err)
		}
		record := feeModel.PaymentModel{
			ID:            uuid.New(),
			StudentID:     student.ID,
			Amount:        req.Amount,
			PaymentMethod: method,
			TransactionID: txnID,
			Status:        feeModel.PaymentStatusSuccess,
			PaymentDate:   w.now(),
			Description:   "College fees payment - " + student.Name,
		}
		if len(req.Meta) > 0 {
			record.Meta = datatypes.JSONMap(req.Meta)
		}
		if err := tx.CreatePayment(ctx, &record); err != nil {
			return writeError("Failed to record payment", err)
		}

		receipt = &PaymentReceipt{
			Payment: record,
			Balance: ComputeBalance(student.TotalFees, append([]feeModel.PaymentModel{record}, ledger...)),
		}
		return nil
	})
	if err != nil {
		if _, ok := AsFeeError(err); ok {
			return nil, err
		}
		// commit failures surface here; nothing was published
		return nil, writeError("Failed to record payment", err)
	}

	logger.Log.Info("payment recorded",
		zap.String("student_id", req.StudentID.String()),
		zap.String("transaction_id", receipt.Payment.TransactionID),
		zap.String("amount", receipt.Payment.Amount.String()),
		zap.String("amount_due", receipt.Balance.AmountDue.String()),
	)
	return receipt, nil
}
