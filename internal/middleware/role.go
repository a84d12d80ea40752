package middleware

import (
	"github.com/labstack/echo/v4"

	"videoclub/internal/apperror"
)

// RequireRole returns a middleware that enforces that the authenticated
// caller has one of the given roles.  A request with no identity in context
// indicates a middleware ordering bug upstream and is answered with 401
// rather than 403; a present identity with a role outside the allowed set
// gets 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentIdentity(c)
			if !ok {
				return apperror.Unauthorized("")
			}
			if !allowed[id.Role] {
				return apperror.Forbidden()
			}
			return next(c)
		}
	}
}
