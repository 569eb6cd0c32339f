package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

// ctxSession extracts the session injected by the Auth middleware. The
// session is the explicit identity object passed into every core call;
// core code never reads ambient auth state.
func ctxSession(c echo.Context) (ports.Session, error) {
	accountID, _ := c.Get("account_id").(string)
	role, _ := c.Get("role").(string)
	email, _ := c.Get("email").(string)

	if accountID == "" || role == "" {
		return ports.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return ports.Session{AccountID: accountID, Role: role, Email: email}, nil
}
