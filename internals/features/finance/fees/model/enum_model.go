package model

type PaymentStatus string
type PaymentMethod string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Only mock settles automatically; the rest are recorded as informational.
const (
	PaymentMethodMock         PaymentMethod = "mock"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodRazorpay     PaymentMethod = "razorpay"
	PaymentMethodStripe       PaymentMethod = "stripe"
)

var paymentMethods = map[PaymentMethod]struct{}{
	PaymentMethodMock:         {},
	PaymentMethodCash:         {},
	PaymentMethodBankTransfer: {},
	PaymentMethodRazorpay:     {},
	PaymentMethodStripe:       {},
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethods[m]
	return ok
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed:
		return true
	}
	return false
}
