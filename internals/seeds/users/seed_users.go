package users

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"campusfee_backend/internals/constants"
	"campusfee_backend/internals/features/finance/fees/repository"
	feeService "campusfee_backend/internals/features/finance/fees/service"
	accountModel "campusfee_backend/internals/features/users/user/model"
	"campusfee_backend/internals/logger"
)

type UserSeed struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Password   string          `json:"password"`
	Role       string          `json:"role"`
	USN        string          `json:"usn"`
	Department string          `json:"department"`
	Year       int             `json:"year"`
	Semester   int             `json:"semester"`
	TotalFees  decimal.Decimal `json:"totalFees"`
}

// Result: jumlah akun yang dibuat dan yang dilewati karena email sudah ada.
type Result struct {
	Created int
	Skipped int
}

func SeedUsersFromJSON(ctx context.Context, store repository.Store, hasher feeService.PasswordHasher, emailSuffix, filePath string) (Result, error) {
	logger.Log.Info("reading seed file", zap.String("file", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return Result{}, fmt.Errorf("read seed file: %w", err)
	}

	var seeds []UserSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return Result{}, fmt.Errorf("decode seed file: %w", err)
	}
	return SeedUsers(ctx, store, hasher, emailSuffix, seeds)
}

// SeedUsers membuat admin langsung lewat store; mahasiswa lewat
// Provisioner supaya aturan domain email dan registrasi tetap berlaku.
func SeedUsers(ctx context.Context, store repository.Store, hasher feeService.PasswordHasher, emailSuffix string, seeds []UserSeed) (Result, error) {
	prov := feeService.NewProvisioner(store, hasher, emailSuffix)

	var res Result
	for _, s := range seeds {
		email := accountModel.NormalizeEmail(s.Email)
		if !constants.IsValidRole(s.Role) {
			return res, fmt.Errorf("seed %s: unknown role %q", email, s.Role)
		}
		if _, err := store.FindAccountByEmail(ctx, email); err == nil {
			logger.Log.Info("seed account exists, skipped", zap.String("email", email))
			res.Skipped++
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return res, err
		}

		switch s.Role {
		case accountModel.RoleAdmin:
			if err := seedAdmin(ctx, store, hasher, s); err != nil {
				return res, fmt.Errorf("seed admin %s: %w", email, err)
			}
		case accountModel.RoleStudent:
			if _, err := prov.CreateStudent(ctx, feeService.NewStudent{
				Name:               s.Name,
				Email:              s.Email,
				Password:           s.Password,
				RegistrationNumber: s.USN,
				Department:         s.Department,
				Year:               s.Year,
				Semester:           s.Semester,
				TotalFees:          s.TotalFees,
			}); err != nil {
				return res, fmt.Errorf("seed student %s: %w", email, err)
			}
		}
		res.Created++
	}

	logger.Log.Info("user seed done", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return res, nil
}

func seedAdmin(ctx context.Context, store repository.Store, hasher feeService.PasswordHasher, s UserSeed) error {
	hashed, err := hasher.Hash(s.Password)
	if err != nil {
		return err
	}
	acc := &accountModel.AccountModel{
		ID:       uuid.New(),
		Email:    s.Email,
		Password: hashed,
		Role:     accountModel.RoleAdmin,
		Name:     s.Name,
	}
	acc.Normalize()
	return store.CreateAccount(ctx, acc)
}
