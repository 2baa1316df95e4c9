package ogcard

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleAdminStatus reports whether the caller is logged in and hands out
// the CSRF token that login and font changes must echo back.
func (a *App) handleAdminStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": IsAdmin(c),
		"csrf":          CsrfToken(c),
	})
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) != 1 {
		return echo.NewHTTPError(http.StatusUnauthorized, "wrong password")
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
