package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"campusfee_backend/internals/features/finance/fees/repository"
	accountModel "campusfee_backend/internals/features/users/user/model"
	"campusfee_backend/internals/logger"
)

const feesPrecisionMsg = "Total fees can have at most 2 decimal places"

// PasswordHasher turns the one-time plaintext credential into its stored form.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type NewStudent struct {
	Name               string `validate:"required,min=2,max=120"`
	Email              string `validate:"required,email"`
	Password           string `validate:"required,min=6"`
	RegistrationNumber string `validate:"required,max=32"`
	Department         string `validate:"required,max=120"`
	Year               int    `validate:"required,min=1,max=4"`
	Semester           int    `validate:"required,min=1,max=8"`
	TotalFees          decimal.Decimal
}

// StudentUpdate holds the admin-editable fields; nil fields are left alone.
// Lowering TotalFees below the amount already paid is allowed.
type StudentUpdate struct {
	TotalFees  *decimal.Decimal
	Name       *string `validate:"omitnil,min=2,max=120"`
	Department *string `validate:"omitnil,max=120"`
	Year       *int    `validate:"omitnil,min=1,max=4"`
	Semester   *int    `validate:"omitnil,min=1,max=8"`
}

type Provisioner struct {
	store       repository.Store
	hasher      PasswordHasher
	emailSuffix string
	validate    *validator.Validate
}

func NewProvisioner(store repository.Store, hasher PasswordHasher, emailSuffix string) *Provisioner {
	return &Provisioner{
		store:       store,
		hasher:      hasher,
		emailSuffix: "@" + strings.TrimPrefix(strings.ToLower(strings.TrimSpace(emailSuffix)), "@"),
		validate:    validator.New(),
	}
}

func (p *Provisioner) EmailSuffix() string { return p.emailSuffix }

// CreateStudent checks input, institution domain and uniqueness, in that
// order, before anything is written.
func (p *Provisioner) CreateStudent(ctx context.Context, in NewStudent) (*accountModel.AccountModel, error) {
	in.Email = accountModel.NormalizeEmail(in.Email)
	in.RegistrationNumber = accountModel.NormalizeRegistrationNumber(in.RegistrationNumber)
	in.Name = strings.TrimSpace(in.Name)
	in.Department = strings.TrimSpace(in.Department)

	if err := p.validate.Struct(in); err != nil {
		return nil, fromValidator(err)
	}
	if in.TotalFees.IsNegative() {
		return nil, validationError("Total fees cannot be negative", map[string]string{"totalFees": "must be 0 or more"})
	}
	if !HasMoneyPrecision(in.TotalFees) {
		return nil, validationError(feesPrecisionMsg, map[string]string{"totalFees": "at most 2 decimal places"})
	}
	if !strings.HasSuffix(in.Email, p.emailSuffix) {
		return nil, newError(KindDomainMismatch, "Student email must end with "+p.emailSuffix, nil)
	}

	if _, err := p.store.FindAccountByEmail(ctx, in.Email); err == nil {
		return nil, newError(KindDuplicateEmail, "A user with this email already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("Failed to check email", err)
	}
	if _, err := p.store.FindAccountByRegistrationNumber(ctx, in.RegistrationNumber); err == nil {
		return nil, newError(KindDuplicateRegistrationNumber, "A student with this USN already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("Failed to check registration number", err)
	}

	hash, err := p.hasher.Hash(in.Password)
	if err != nil {
		return nil, writeError("Failed to secure password", err)
	}

	year, sem, dept, rn := in.Year, in.Semester, in.Department, in.RegistrationNumber
	acc := &accountModel.AccountModel{
		ID:                 uuid.New(),
		Email:              in.Email,
		Password:           hash,
		Role:               accountModel.RoleStudent,
		Name:               in.Name,
		Department:         &dept,
		Year:               &year,
		Semester:           &sem,
		RegistrationNumber: &rn,
		TotalFees:          in.TotalFees,
	}
	if err := p.store.CreateAccount(ctx, acc); err != nil {
		// a concurrent create can still trip the unique indexes
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, newError(KindDuplicateEmail, "A user with this email already exists", nil)
		case errors.Is(err, repository.ErrDuplicateRegistrationNumber):
			return nil, newError(KindDuplicateRegistrationNumber, "A student with this USN already exists", nil)
		}
		return nil, writeError("Failed to create student", err)
	}

	logger.Log.Info("student created", zap.String("student_id", acc.ID.String()), zap.String("usn", rn))
	return acc, nil
}

func (p *Provisioner) UpdateStudent(ctx context.Context, id uuid.UUID, in StudentUpdate) (*accountModel.AccountModel, error) {
	if err := p.validate.Struct(in); err != nil {
		return nil, fromValidator(err)
	}
	if in.TotalFees != nil && in.TotalFees.IsNegative() {
		return nil, validationError("Total fees cannot be negative", map[string]string{"totalFees": "must be 0 or more"})
	}
	if in.TotalFees != nil && !HasMoneyPrecision(*in.TotalFees) {
		return nil, validationError(feesPrecisionMsg, map[string]string{"totalFees": "at most 2 decimal places"})
	}
	patch := repository.AccountPatch{
		TotalFees:  in.TotalFees,
		Name:       trimmed(in.Name),
		Department: trimmed(in.Department),
		Year:       in.Year,
		Semester:   in.Semester,
	}
	if patch.IsEmpty() {
		return nil, validationError("No fields to update", nil)
	}

	var updated *accountModel.AccountModel
	err := p.store.Transaction(ctx, func(tx repository.Store) error {
		acc, err := tx.FindAccountByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound("Student not found")
			}
			return storeError("Failed to load student", err)
		}
		if !acc.IsStudent() {
			return notFound("Student not found")
		}
		if err := tx.UpdateAccountFields(ctx, id, patch); err != nil {
			return writeError("Failed to update student", err)
		}
		updated, err = tx.FindAccountByID(ctx, id)
		if err != nil {
			return storeError("Failed to reload student", err)
		}
		return nil
	})
	if err != nil {
		if _, ok := AsFeeError(err); ok {
			return nil, err
		}
		return nil, writeError("Failed to update student", err)
	}
	return updated, nil
}

// DeleteStudent removes the account and its ledger in one transaction and
// returns how many payment records went with it.
func (p *Provisioner) DeleteStudent(ctx context.Context, id uuid.UUID) (int64, error) {
	var removed int64
	err := p.store.Transaction(ctx, func(tx repository.Store) error {
		acc, err := tx.FindAccountByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound("Student not found")
			}
			return storeError("Failed to load student", err)
		}
		if !acc.IsStudent() {
			return notFound("Student not found")
		}
		if removed, err = tx.DeletePaymentsByStudent(ctx, id); err != nil {
			return writeError("Failed to delete payments", err)
		}
		if err := tx.DeleteAccountByID(ctx, id); err != nil {
			return writeError("Failed to delete student", err)
		}
		return nil
	})
	if err != nil {
		if _, ok := AsFeeError(err); ok {
			return 0, err
		}
		return 0, writeError("Failed to delete student", err)
	}

	logger.Log.Info("student deleted", zap.String("student_id", id.String()), zap.Int64("payments_removed", removed))
	return removed, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// fromValidator maps validator.ValidationErrors onto per-field messages.
func fromValidator(err error) *FeeError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return validationError("Invalid input", nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonName(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = name + " is required"
		case "email":
			fields[name] = "invalid email format"
		case "min":
			fields[name] = name + " must be at least " + fe.Param()
		case "max":
			fields[name] = name + " must be at most " + fe.Param()
		default:
			fields[name] = "invalid value"
		}
	}
	msg := "Please provide all required fields"
	for _, fe := range verrs {
		if fe.Tag() != "required" {
			msg = "Invalid input"
			break
		}
	}
	return validationError(msg, fields)
}

var jsonNames = map[string]string{
	"RegistrationNumber": "usn",
	"TotalFees":          "totalFees",
}

func jsonName(field string) string {
	if n, ok := jsonNames[field]; ok {
		return n
	}
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
