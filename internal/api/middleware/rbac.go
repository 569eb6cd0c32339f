package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC rejects requests whose session role is not in the allow list. It
// must run after Auth, which places the role claim on the context.
func RBAC(roles ...string) echo.MiddlewareFunc {
	allow := make(map[string]bool, len(roles))
	for _, role := range roles {
		allow[role] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !allow[role] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
