package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxPrincipal extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: username and role must
// be non-empty (presence proves the middleware ran). Wallet may be empty for
// tokens issued before assignment; submission paths check it separately.
func ctxPrincipal(c echo.Context) (username, role, wallet string, err error) {
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	if username == "" || role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	wallet, _ = c.Get("wallet").(string)
	return username, role, wallet, nil
}
