// internals/middlewares/auth/claims_utils.go
package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	accountModel "campusfee_backend/internals/features/users/user/model"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		return "", fmt.Errorf("No token provided")
	}

	// toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("Invalid token format")
	}

	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("Empty token")
	}
	return tok, nil
}

/* ======== Store identity to Locals ======== */

// Role diambil dari akun tersimpan, bukan dari klaim token.
func storeIdentityToLocals(c *fiber.Ctx, acc *accountModel.AccountModel) {
	c.Locals("user_id", acc.ID.String())
	c.Locals("userRole", acc.Role)
	c.Locals("user_email", acc.Email)
}
