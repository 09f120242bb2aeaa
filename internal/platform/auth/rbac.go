package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// PrivilegedRoles are the roles allowed to see broadcast notifications and
// operate on clinical data. Admin implicitly satisfies any role check.
var PrivilegedRoles = []string{"admin", "nurse", "manager"}

// IsPrivileged reports whether any of the caller's roles is privileged.
func IsPrivileged(roles []string) bool {
	for _, r := range roles {
		for _, p := range PrivilegedRoles {
			if r == p {
				return true
			}
		}
	}
	return false
}

// RequireRole returns middleware that rejects callers lacking all of the
// given roles. Admin always passes.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, required := range roles {
				for _, has := range userRoles {
					if has == required || has == "admin" {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
