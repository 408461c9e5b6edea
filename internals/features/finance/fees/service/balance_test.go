package service

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
)

func payment(amount int64, status feeModel.PaymentStatus, at time.Time) feeModel.PaymentModel {
	return feeModel.PaymentModel{Amount: dec(amount), Status: status, PaymentDate: at}
}

func TestComputeBalance(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		totalFees int64
		payments  []feeModel.PaymentModel
		wantPaid  int64
		wantDue   int64
	}{
		{name: "no payments", totalFees: 1000, wantPaid: 0, wantDue: 1000},
		{
			name:      "success only",
			totalFees: 1000,
			payments: []feeModel.PaymentModel{
				payment(400, feeModel.PaymentStatusSuccess, t0),
				payment(100, feeModel.PaymentStatusSuccess, t0.Add(time.Hour)),
			},
			wantPaid: 500, wantDue: 500,
		},
		{
			name:      "pending and failed ignored",
			totalFees: 1000,
			payments: []feeModel.PaymentModel{
				payment(400, feeModel.PaymentStatusSuccess, t0),
				payment(300, feeModel.PaymentStatusPending, t0.Add(time.Hour)),
				payment(200, feeModel.PaymentStatusFailed, t0.Add(2*time.Hour)),
			},
			wantPaid: 400, wantDue: 600,
		},
		{
			name:      "fully paid",
			totalFees: 1000,
			payments: []feeModel.PaymentModel{
				payment(400, feeModel.PaymentStatusSuccess, t0),
				payment(600, feeModel.PaymentStatusSuccess, t0.Add(time.Hour)),
			},
			wantPaid: 1000, wantDue: 0,
		},
		{
			name:      "fees lowered below paid",
			totalFees: 300,
			payments: []feeModel.PaymentModel{
				payment(600, feeModel.PaymentStatusSuccess, t0),
			},
			wantPaid: 600, wantDue: -300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalance(dec(tt.totalFees), tt.payments)
			assertDecimal(t, "totalFees", got.TotalFees, tt.totalFees)
			assertDecimal(t, "amountPaid", got.AmountPaid, tt.wantPaid)
			assertDecimal(t, "amountDue", got.AmountDue, tt.wantDue)
			if len(got.PaymentHistory) != len(tt.payments) {
				t.Errorf("history length: got %d, want %d", len(got.PaymentHistory), len(tt.payments))
			}
			if got.PaymentHistory == nil {
				t.Errorf("history should be an empty slice, not nil")
			}
		})
	}
}

func TestComputeBalanceHistoryNewestFirst(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []feeModel.PaymentModel{
		payment(100, feeModel.PaymentStatusSuccess, t0),
		payment(300, feeModel.PaymentStatusSuccess, t0.Add(2*time.Hour)),
		payment(200, feeModel.PaymentStatusSuccess, t0.Add(time.Hour)),
	}

	got := ComputeBalance(dec(1000), in)

	want := []int64{300, 200, 100}
	for i, w := range want {
		if !got.PaymentHistory[i].Amount.Equal(dec(w)) {
			t.Errorf("history[%d]: got %s, want %d", i, got.PaymentHistory[i].Amount, w)
		}
	}
	if !in[0].Amount.Equal(dec(100)) {
		t.Errorf("input slice was reordered")
	}
}

func TestComputeBalanceDecimalExact(t *testing.T) {
	in := []feeModel.PaymentModel{
		{Amount: decimal.RequireFromString("0.10"), Status: feeModel.PaymentStatusSuccess},
		{Amount: decimal.RequireFromString("0.20"), Status: feeModel.PaymentStatusSuccess},
	}
	got := ComputeBalance(decimal.RequireFromString("0.30"), in)
	if !got.AmountDue.IsZero() {
		t.Fatalf("amountDue: got %s, want 0", got.AmountDue)
	}
}

func TestValidatePaymentRequest(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		due    decimal.Decimal
		want   *FeeError
	}{
		{name: "within due", amount: dec(400), due: dec(1000)},
		{name: "exactly due", amount: dec(600), due: dec(600)},
		{name: "zero", amount: dec(0), due: dec(600), want: ErrInvalidAmount},
		{name: "negative", amount: dec(-5), due: dec(600), want: ErrInvalidAmount},
		{name: "above due", amount: dec(700), due: dec(600), want: ErrExceedsDue},
		{name: "nothing due", amount: dec(1), due: dec(0), want: ErrExceedsDue},
		{name: "negative due", amount: dec(1), due: dec(-300), want: ErrExceedsDue},
		{name: "sub-cent above due", amount: decimal.RequireFromString("600.004"), due: dec(600), want: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentRequest(tt.amount, tt.due)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			assertKind(t, err, tt.want)
		})
	}
}

func TestExceedsDueMessageCarriesDue(t *testing.T) {
	err := ValidatePaymentRequest(dec(700), dec(600))
	fe, ok := AsFeeError(err)
	if !ok {
		t.Fatalf("expected *FeeError, got %T", err)
	}
	if !strings.Contains(fe.Message, "600") {
		t.Errorf("message %q does not mention the due amount", fe.Message)
	}
}

func TestParseAmount(t *testing.T) {
	for v, want := range map[float64]string{250.45: "250.45", 600: "600", 0.1: "0.1", 0.01: "0.01"} {
		if got, err := ParseAmount(v); err != nil || !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("ParseAmount(%v): got %s, %v", v, got, err)
		}
	}
	for _, v := range []float64{0, -1, 0.001, 250.456, 600.004, math.NaN(), math.Inf(1)} {
		if _, err := ParseAmount(v); err == nil {
			t.Errorf("ParseAmount(%v): expected error", v)
		} else {
			assertKind(t, err, ErrInvalidAmount)
		}
	}
}

func TestParseAmountPrecisionMessage(t *testing.T) {
	_, err := ParseAmount(0.004)
	fe, ok := AsFeeError(err)
	if !ok {
		t.Fatalf("expected *FeeError, got %T", err)
	}
	if fe.Message != "Payment amount can have at most 2 decimal places" {
		t.Errorf("message: got %q", fe.Message)
	}
}
