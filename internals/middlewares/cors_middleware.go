// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware membuat middleware CORS dari daftar origin di config.
// Wildcard "*" tidak boleh dipadukan dengan credentials.
func CorsMiddleware(origins []string) fiber.Handler {
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}

	cfg := cors.Config{
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: !allowAll,
	}
	if allowAll {
		cfg.AllowOrigins = "*"
	} else {
		cfg.AllowOrigins = strings.Join(origins, ", ")
	}
	return cors.New(cfg)
}
