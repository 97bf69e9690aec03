package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a per-team rate limiter middleware instance. Teams that
// have not authenticated are limited by IP instead.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			teamID := fmt.Sprintf("%v", c.Locals(TeamIDKey))
			if teamID == "" || teamID == "0" || teamID == "<nil>" {
				teamID = c.IP()
			}
			return fmt.Sprintf("%s:%s", identifier, teamID)
		},
	})
}
