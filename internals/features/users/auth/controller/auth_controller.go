package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRepo "trainingcenter_backend/internals/features/users/auth/repository"
	authService "trainingcenter_backend/internals/features/users/auth/service"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type AuthController struct {
	DB        *gorm.DB
	Service   *authService.AuthService
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:        db,
		Service:   authService.NewAuthService(db),
		Validator: helper.NewValidator(),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func clientMeta(c *fiber.Ctx) authService.ClientMeta {
	return authService.ClientMeta{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

func setAuthCookies(c *fiber.Ctx, p authService.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.CookieAccessToken,
		Value:    p.AccessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  p.AccessExpiresAt,
	})
	c.Cookie(&fiber.Cookie{
		Name:     helper.CookieRefreshToken,
		Value:    p.RefreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/api/auth",
		Expires:  p.RefreshExpiresAt,
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Unix(0, 0)
	for name, path := range map[string]string{helper.CookieAccessToken: "/", helper.CookieRefreshToken: "/api/auth"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     path,
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}

func authError(c *fiber.Ctx, err error) error {
	if fields := helper.ValidationErrors(err); fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	switch {
	case errors.Is(err, authService.ErrInvalidCredentials),
		errors.Is(err, authService.ErrRefreshInvalid):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, authService.ErrInactiveUser),
		errors.Is(err, authService.ErrGoogleUnknownUser):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, authService.ErrGoogleDisabled):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
	}
	log.Printf("[ERROR] auth %s: %v", c.Path(), err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "authentication failed")
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	res, err := ac.Service.Login(c.UserContext(), req.Email, req.Password, clientMeta(c))
	if err != nil {
		return authError(c, err)
	}
	setAuthCookies(c, res.Tokens)
	return helper.JsonOK(c, "login successful", res)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	res, err := ac.Service.LoginGoogle(c.UserContext(), req.IDToken, clientMeta(c))
	if err != nil {
		return authError(c, err)
	}
	setAuthCookies(c, res.Tokens)
	return helper.JsonOK(c, "login successful", res)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "refresh token missing")
	}
	res, err := ac.Service.Refresh(c.UserContext(), raw, clientMeta(c))
	if err != nil {
		clearAuthCookies(c)
		return authError(c, err)
	}
	setAuthCookies(c, res.Tokens)
	return helper.JsonOK(c, "token refreshed", res)
}

// Logout works without a valid session so stale clients can always clear cookies.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	var exp time.Time
	if raw != "" {
		if _, e, err := helperAuth.ParseAccessToken(ac.Service.AccessSecret, raw, time.Now()); err == nil {
			exp = e
		} else {
			raw = ""
		}
	}
	if err := ac.Service.Logout(c.UserContext(), raw, exp, helper.GetRefreshTokenFromCookie(c)); err != nil {
		log.Printf("[ERROR] logout: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "logout failed")
	}
	clearAuthCookies(c)
	return helper.JsonOK(c, "logged out", nil)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	s, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(c.UserContext(), ac.DB, s.UserID)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "ok", user)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	s, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := ac.Service.ChangePassword(c.UserContext(), s.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return authError(c, err)
	}
	return helper.JsonUpdated(c, "password changed", nil)
}
