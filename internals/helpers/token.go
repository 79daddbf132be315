package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
)

// GetRawAccessToken reads "Authorization: Bearer" first, then the access_token cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	const p = "bearer "
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return strings.TrimSpace(c.Cookies(CookieAccessToken))
}

func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies(CookieRefreshToken))
}
