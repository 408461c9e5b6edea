// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	accountModel "campusfee_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// AccessClaims adalah isi token yang dibaca middleware.
type AccessClaims struct {
	UserID uuid.UUID
	Role   string
	Expiry time.Time
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func buildAccessClaims(acc accountModel.AccountModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":  "access",
		"sub":  acc.ID.String(),
		"id":   acc.ID.String(),
		"role": acc.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
}

// Issue menandatangani access token HS256 untuk akun.
func (s *TokenService) Issue(acc accountModel.AccountModel) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(acc, now, s.ttl)).
		SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// Parse memverifikasi signature, exp, dan typ, lalu mengembalikan identitasnya.
func (s *TokenService) Parse(raw string) (*AccessClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrTokenInvalid
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return nil, ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		sub, _ = claims["id"].(string)
	}
	id, err := uuid.Parse(sub)
	if err != nil || id == uuid.Nil {
		return nil, ErrTokenInvalid
	}

	out := &AccessClaims{UserID: id}
	out.Role, _ = claims["role"].(string)
	if exp, ok := claims["exp"].(float64); ok {
		out.Expiry = time.Unix(int64(exp), 0)
	} else {
		return nil, ErrTokenInvalid
	}
	return out, nil
}
