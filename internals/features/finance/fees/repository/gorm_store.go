package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	accountModel "campusfee_backend/internals/features/users/user/model"
)

const pgUniqueViolation = "23505"

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

/* ====================== ACCOUNTS ====================== */

func (s *GormStore) findAccount(ctx context.Context, query string, args ...any) (*accountModel.AccountModel, error) {
	var acc accountModel.AccountModel
	if err := s.db.WithContext(ctx).Where(query, args...).First(&acc).Error; err != nil {
		return nil, mapError(err)
	}
	return &acc, nil
}

func (s *GormStore) FindAccountByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error) {
	return s.findAccount(ctx, "id = ?", id)
}

func (s *GormStore) FindAccountByEmail(ctx context.Context, email string) (*accountModel.AccountModel, error) {
	return s.findAccount(ctx, "email = ?", accountModel.NormalizeEmail(email))
}

func (s *GormStore) FindAccountByRegistrationNumber(ctx context.Context, rn string) (*accountModel.AccountModel, error) {
	return s.findAccount(ctx, "registration_number = ?", accountModel.NormalizeRegistrationNumber(rn))
}

func (s *GormStore) FindAccountsByRole(ctx context.Context, role string) ([]accountModel.AccountModel, error) {
	var out []accountModel.AccountModel
	err := s.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) CountAccountsByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&accountModel.AccountModel{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

func (s *GormStore) SumTotalFeesByRole(ctx context.Context, role string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.db.WithContext(ctx).Model(&accountModel.AccountModel{}).
		Select("COALESCE(SUM(total_fees), 0)").
		Where("role = ?", role).
		Row().Scan(&sum)
	return sum, err
}

func (s *GormStore) CreateAccount(ctx context.Context, acc *accountModel.AccountModel) error {
	return mapError(s.db.WithContext(ctx).Create(acc).Error)
}

func (s *GormStore) UpdateAccountFields(ctx context.Context, id uuid.UUID, patch AccountPatch) error {
	updates := map[string]any{"updated_at": time.Now()}
	if patch.TotalFees != nil {
		updates["total_fees"] = *patch.TotalFees
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Department != nil {
		updates["department"] = *patch.Department
	}
	if patch.Year != nil {
		updates["year"] = *patch.Year
	}
	if patch.Semester != nil {
		updates["semester"] = *patch.Semester
	}
	if patch.Password != nil {
		updates["password"] = *patch.Password
	}

	res := s.db.WithContext(ctx).Model(&accountModel.AccountModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteAccountByID(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&accountModel.AccountModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) LockAccountByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error) {
	var acc accountModel.AccountModel
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&acc).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &acc, nil
}

/* ====================== PAYMENTS ====================== */

func (s *GormStore) payments(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&feeModel.PaymentModel{}).
		Order("payment_date DESC").
		Order("created_at DESC")
}

func (s *GormStore) FindPaymentsByStudentAndStatus(ctx context.Context, studentID uuid.UUID, status feeModel.PaymentStatus) ([]feeModel.PaymentModel, error) {
	var out []feeModel.PaymentModel
	err := s.payments(ctx).Where("student_id = ? AND status = ?", studentID, status).Find(&out).Error
	return out, err
}

func (s *GormStore) FindPaymentsByStudentsAndStatus(ctx context.Context, studentIDs []uuid.UUID, status feeModel.PaymentStatus) ([]feeModel.PaymentModel, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var out []feeModel.PaymentModel
	err := s.payments(ctx).Where("student_id IN ? AND status = ?", studentIDs, status).Find(&out).Error
	return out, err
}

func (s *GormStore) FindPaymentsByStudent(ctx context.Context, studentID uuid.UUID) ([]feeModel.PaymentModel, error) {
	var out []feeModel.PaymentModel
	err := s.payments(ctx).Where("student_id = ?", studentID).Find(&out).Error
	return out, err
}

func (s *GormStore) FindPaymentByIDAndStudent(ctx context.Context, id, studentID uuid.UUID) (*feeModel.PaymentModel, error) {
	var p feeModel.PaymentModel
	if err := s.db.WithContext(ctx).Where("id = ? AND student_id = ?", id, studentID).First(&p).Error; err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (s *GormStore) CreatePayment(ctx context.Context, p *feeModel.PaymentModel) error {
	return mapError(s.db.WithContext(ctx).Omit("Student").Create(p).Error)
}

func (s *GormStore) DeletePaymentsByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&feeModel.PaymentModel{})
	return res.RowsAffected, res.Error
}

func (s *GormStore) CountPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&feeModel.PaymentModel{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *GormStore) SumPaymentsByStatus(ctx context.Context, status feeModel.PaymentStatus) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.db.WithContext(ctx).Model(&feeModel.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", status).
		Row().Scan(&sum)
	return sum, err
}

/* ====================== ERRORS ====================== */

// mapError translates gorm and postgres errors into the store's sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case "idx_accounts_email":
			return ErrDuplicateEmail
		case "idx_accounts_registration_number":
			return ErrDuplicateRegistrationNumber
		case "idx_payments_transaction_id":
			return ErrDuplicateTransactionID
		}
	}
	return err
}
