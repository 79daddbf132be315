package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "trainingcenter_backend/internals/helpers"
)

func ipLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(200, time.Minute, "too many requests, try again later")
}

func LoginRateLimiter() fiber.Handler {
	return ipLimiter(5, time.Minute, "too many login attempts, try again in a minute")
}

// DocumentRateLimiter guards PDF rendering, which is the most expensive endpoint.
func DocumentRateLimiter() fiber.Handler {
	return ipLimiter(30, time.Minute, "too many document requests, try again later")
}
