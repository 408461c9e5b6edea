package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	helper "campusfee_backend/internals/helpers"
)

func newRoleApp(role string, guard fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("userRole", role)
		}
		return c.Next()
	})
	app.Get("/guarded", guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestOnlyRolesDefaultMessageConcurrent(t *testing.T) {
	app := newRoleApp("student", OnlyRoles("", "admin"))

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil), -1)
			if err != nil {
				errs <- err.Error()
				return
			}
			defer resp.Body.Close()

			var body map[string]any
			_ = json.NewDecoder(resp.Body).Decode(&body)
			if resp.StatusCode != http.StatusForbidden {
				errs <- "unexpected status"
				return
			}
			if body["message"] != "Forbidden: you are not authorized to access this resource" {
				errs <- "unexpected message"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestOnlyRolesAllowsAndRejects(t *testing.T) {
	cases := []struct {
		name string
		role string
		want int
	}{
		{name: "allowed", role: "admin", want: http.StatusOK},
		{name: "other role", role: "student", want: http.StatusForbidden},
		{name: "no role", role: "", want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newRoleApp(tc.role, OnlyRoles("Only admins can access this resource.", "admin"))
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil), -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Fatalf("status: got %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}
