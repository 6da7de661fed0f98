package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray id.
const HeaderName = "X-Ray-ID"

// LocalsKey is the Fiber Locals key holding the ray id.
const LocalsKey = "ray_id"

// New returns middleware that assigns every request a ray id.
// An incoming X-Ray-ID header is reused so callers can correlate retries.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
