package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/muskanVaswani/sudharsetu-backend/internal/auth"
)

// RequireAdmin guards admin-only routes. It expects an
// "Authorization: Bearer <token>" header carrying a token minted by the
// login endpoint.
func RequireAdmin(manager *auth.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return c.JSON(
					http.StatusUnauthorized,
					map[string]string{"error": "missing or malformed authorization header"},
				)
			}

			claims, err := manager.ValidateToken(strings.TrimPrefix(header, prefix))
			if err != nil {
				return c.JSON(
					http.StatusUnauthorized,
					map[string]string{"error": "invalid or expired token"},
				)
			}
			if claims.Role != auth.RoleAdmin {
				return c.JSON(
					http.StatusForbidden,
					map[string]string{"error": "admin role required"},
				)
			}

			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
