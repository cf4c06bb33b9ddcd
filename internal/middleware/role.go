package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RoleCurator is the only role allowed to add catalog records.
const RoleCurator = "CURATOR"

// RequireRole rejects requests whose "role" context value, set by
// CuratorAuth, is not one of roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "message": "curator role required"})
			}
			return next(c)
		}
	}
}
