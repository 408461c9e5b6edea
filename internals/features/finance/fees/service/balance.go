package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
)

// Balance is a student's financial position derived from the ledger.
// AmountDue goes negative when fees were lowered below what was already paid.
type Balance struct {
	TotalFees      decimal.Decimal         `json:"totalFees"`
	AmountPaid     decimal.Decimal         `json:"amountPaid"`
	AmountDue      decimal.Decimal         `json:"amountDue"`
	PaymentHistory []feeModel.PaymentModel `json:"paymentHistory"`
}

// ComputeBalance sums the success records in payments and returns them,
// newest first, as the history. Records with any other status are ignored
// even if the caller passes them in.
func ComputeBalance(totalFees decimal.Decimal, payments []feeModel.PaymentModel) Balance {
	paid := decimal.Zero
	for i := range payments {
		if payments[i].IsSuccess() {
			paid = paid.Add(payments[i].Amount)
		}
	}

	history := make([]feeModel.PaymentModel, len(payments))
	copy(history, payments)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].PaymentDate.After(history[j].PaymentDate)
	})

	return Balance{
		TotalFees:      totalFees,
		AmountPaid:     paid,
		AmountDue:      totalFees.Sub(paid),
		PaymentHistory: history,
	}
}

// ValidatePaymentRequest accepts amounts in (0, due]. Paying exactly the due
// amount is allowed.
func ValidatePaymentRequest(amount, amountDue decimal.Decimal) error {
	if !amount.IsPositive() {
		return newError(KindInvalidAmount, "Payment amount must be greater than zero", nil)
	}
	if !HasMoneyPrecision(amount) {
		return newError(KindInvalidAmount, "Payment amount can have at most 2 decimal places", nil)
	}
	if amount.GreaterThan(amountDue) {
		return newError(KindExceedsDue, ExceedsDueMessage(amountDue), nil)
	}
	return nil
}

func ExceedsDueMessage(amountDue decimal.Decimal) string {
	return fmt.Sprintf("Payment amount cannot exceed pending amount of ₹%s", amountDue.String())
}

// ParseAmount converts a JSON number into a money amount. Amounts with more
// than two fractional digits are rejected, never rounded.
func ParseAmount(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, newError(KindInvalidAmount, "Payment amount must be a finite number", nil)
	}
	amount := decimal.NewFromFloat(v)
	if !amount.IsPositive() {
		return decimal.Zero, newError(KindInvalidAmount, "Payment amount must be greater than zero", nil)
	}
	if !HasMoneyPrecision(amount) {
		return decimal.Zero, newError(KindInvalidAmount, "Payment amount can have at most 2 decimal places", nil)
	}
	return amount, nil
}

// HasMoneyPrecision reports whether d fits in two fractional digits.
func HasMoneyPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}
