package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"campusfee_backend/internals/features/users/auth/service"
	helper "campusfee_backend/internals/helpers"
	"campusfee_backend/internals/logger"
)

type AuthController struct {
	Auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format", err)
	}

	res, err := ac.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error(), nil)
		}
		return ac.serverError(c, "Server error during login", err)
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt.UTC(),
		"user":      res.Account,
	})
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	acc, err := ac.Auth.Me(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error(), nil)
		}
		return ac.serverError(c, "Server error while fetching user", err)
	}

	return helper.JsonOK(c, "", fiber.Map{"user": acc})
}

// PUT /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var in changePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format", err)
	}

	if err := ac.Auth.ChangePassword(c.UserContext(), id, in.CurrentPassword, strings.TrimSpace(in.NewPassword)); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error(), nil)
		case service.IsClientError(err):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		return ac.serverError(c, "Server error while changing password", err)
	}

	return helper.JsonOK(c, "Password updated successfully", nil)
}

func (ac *AuthController) serverError(c *fiber.Ctx, msg string, err error) error {
	logger.Log.Error(msg, zap.String("path", c.Path()), zap.Error(err))
	return helper.JsonError(c, fiber.StatusInternalServerError, msg, err)
}
