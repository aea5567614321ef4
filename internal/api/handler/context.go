package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - user_id must be positive; a token without a usable identity is
//     structurally valid but operationally unusable — reject with 401.
func ctxClaims(c echo.Context) (userID int, role domain.Role, err error) {
	roleStr, _ := c.Get("role").(string)
	if roleStr == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(int)
	if userID <= 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return userID, domain.Role(roleStr), nil
}
