package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// money goes over the wire as a plain JSON number
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// AccountModel merepresentasikan tabel accounts (admin + student).
type AccountModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email    string    `gorm:"size:255;not null;uniqueIndex:idx_accounts_email" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"type:varchar(20);not null;default:'student';index:idx_accounts_role_created,priority:1" json:"role"`
	Name     string    `gorm:"size:120;not null" json:"name"`

	// student-only profile
	Department         *string `gorm:"size:120" json:"department,omitempty"`
	Year               *int    `gorm:"type:smallint;check:chk_accounts_year,year IS NULL OR year BETWEEN 1 AND 4" json:"year,omitempty"`
	Semester           *int    `gorm:"type:smallint;check:chk_accounts_semester,semester IS NULL OR semester BETWEEN 1 AND 8" json:"semester,omitempty"`
	RegistrationNumber *string `gorm:"size:32;uniqueIndex:idx_accounts_registration_number" json:"registrationNumber,omitempty"`

	TotalFees decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0;check:chk_accounts_total_fees,total_fees >= 0" json:"totalFees"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_accounts_role_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (AccountModel) TableName() string {
	return "accounts"
}

func (a *AccountModel) IsStudent() bool {
	return a != nil && a.Role == RoleStudent
}

// Normalize lowercases the email and uppercases the registration number.
func (a *AccountModel) Normalize() {
	a.Email = NormalizeEmail(a.Email)
	a.Name = strings.TrimSpace(a.Name)
	if a.RegistrationNumber != nil {
		rn := NormalizeRegistrationNumber(*a.RegistrationNumber)
		a.RegistrationNumber = &rn
	}
	if a.Department != nil {
		d := strings.TrimSpace(*a.Department)
		a.Department = &d
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeRegistrationNumber(rn string) string {
	return strings.ToUpper(strings.TrimSpace(rn))
}
