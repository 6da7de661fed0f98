package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-API-Key"

// Config configures the auth middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables the check.
	ApiKey string
	// SkipPaths are served without a key (e.g. health checks).
	SkipPaths []string
}

// New returns middleware that rejects requests without the configured key.
// Bearer tokens in the Authorization header are accepted as well.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		for _, p := range cfg.SkipPaths {
			if c.Path() == p || strings.HasPrefix(c.Path(), p+"/") {
				return c.Next()
			}
		}

		key := c.Get(HeaderName)
		if key == "" {
			key = strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return c.Next()
	}
}
