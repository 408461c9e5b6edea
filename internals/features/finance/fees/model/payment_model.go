package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	accountModel "campusfee_backend/internals/features/users/user/model"
)

/*
  payments = LEDGER
  - Append-only: tidak ada update, hanya insert.
  - Terhapus hanya lewat cascade saat account student dihapus.
  - Hanya status success yang dihitung ke saldo.
*/

type PaymentModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	StudentID uuid.UUID                  `gorm:"type:uuid;not null;index:idx_payments_student_date,priority:1" json:"studentId"`
	Student   *accountModel.AccountModel `gorm:"foreignKey:StudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null;check:chk_payments_amount,amount > 0" json:"amount"`

	PaymentMethod PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null;default:'mock'" json:"paymentMethod"`
	TransactionID string        `gorm:"size:64;not null;uniqueIndex:idx_payments_transaction_id" json:"transactionId"`
	Status        PaymentStatus `gorm:"type:varchar(16);not null;default:'success';index" json:"status"`

	PaymentDate time.Time `gorm:"not null;index:idx_payments_student_date,priority:2,sort:desc" json:"paymentDate"`
	Description string    `gorm:"type:text" json:"description"`

	// channel, request id, dsb. (tidak ikut dihitung)
	Meta datatypes.JSONMap `gorm:"type:jsonb" json:"meta,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (p *PaymentModel) IsSuccess() bool {
	return p != nil && p.Status == PaymentStatusSuccess
}
