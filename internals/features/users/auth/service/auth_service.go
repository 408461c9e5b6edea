package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusfee_backend/internals/features/finance/fees/repository"
	authHelper "campusfee_backend/internals/features/users/auth/helper"
	accountModel "campusfee_backend/internals/features/users/user/model"
	"campusfee_backend/internals/logger"
)

const minPasswordLength = 6

var (
	ErrMissingCredentials = errors.New("Email and password are required")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountNotFound    = errors.New("User not found")
	ErrWrongPassword      = errors.New("Current password is incorrect")
	ErrPasswordTooShort   = errors.New("New password must be at least 6 characters")
	ErrMissingPasswords   = errors.New("Current and new password are required")
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   accountModel.AccountModel
}

type AuthService struct {
	Accounts repository.AccountStore
	Tokens   *TokenService
}

func NewAuthService(accounts repository.AccountStore, tokens *TokenService) *AuthService {
	return &AuthService{Accounts: accounts, Tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = accountModel.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	acc, err := s.Accounts.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := authHelper.CheckPasswordHash(acc.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	tok, exp, err := s.Tokens.Issue(*acc)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("login", zap.String("account_id", acc.ID.String()), zap.String("role", acc.Role))
	return &LoginResult{Token: tok, ExpiresAt: exp, Account: *acc}, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error) {
	acc, err := s.Accounts.FindAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return acc, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	if strings.TrimSpace(current) == "" || strings.TrimSpace(next) == "" {
		return ErrMissingPasswords
	}
	if len(next) < minPasswordLength {
		return ErrPasswordTooShort
	}

	acc, err := s.Me(ctx, id)
	if err != nil {
		return err
	}
	if err := authHelper.CheckPasswordHash(acc.Password, current); err != nil {
		return ErrWrongPassword
	}

	hashed, err := authHelper.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Accounts.UpdateAccountFields(ctx, id, repository.AccountPatch{Password: &hashed})
}

// IsClientError: error yang pesannya aman dikirim ke client.
func IsClientError(err error) bool {
	switch {
	case errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrMissingPasswords):
		return true
	}
	return false
}
