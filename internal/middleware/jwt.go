package middleware // package middleware contains reusable HTTP middleware functions

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"videoclub/internal/apperror"
	"videoclub/internal/config"
	"videoclub/internal/model"
)

// identityKey is the context key under which the authenticated caller is
// stored.  Handlers read it through CurrentIdentity.
const identityKey = "identity"

// Authenticate returns an Echo middleware that validates a Bearer access
// token and attaches the caller's identity (id, email, role) to the request
// context.  Absence of the header, a malformed prefix, or an invalid or
// expired token all fail with 401 before any downstream work happens.  The
// role claim defaults to "user" when missing, mirroring how accounts are
// created; admin promotion is an out-of-band database update.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return apperror.Unauthorized("Token no proporcionado. Usa: Authorization: Bearer <token>")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			if raw == "" {
				return apperror.Unauthorized("Token mal formado")
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Only HS256 tokens are issued; reject anything else.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return apperror.Unauthorized("Token inválido o expirado")
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return apperror.Unauthorized("Token inválido o expirado")
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return apperror.Unauthorized("Token inválido o expirado")
			}
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			if role == "" {
				role = config.RoleUser
			}

			SetIdentity(c, model.Identity{ID: sub, Email: email, Role: role})
			return next(c)
		}
	}
}

// SetIdentity attaches an identity to the request context.
func SetIdentity(c echo.Context, id model.Identity) { c.Set(identityKey, id) }

// CurrentIdentity returns the identity stored by Authenticate, if any.
func CurrentIdentity(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	return id, ok
}
