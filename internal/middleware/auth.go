package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"org-service/pkg/jwtutil"
	"org-service/pkg/logger"
	"org-service/prometheus"
)

// AdminContextKey is the echo context key the validated claims are stored under.
const AdminContextKey = "admin"

// JWTAuthMiddleware creates a middleware that validates bearer JWT tokens
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			// Extract the token from the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}

			// Check if the header format is valid
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("malformed_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header"})
			}

			// Validate the token
			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				if errors.Is(err, jwtutil.ErrTokenExpired) {
					log.Warn("Expired token")
					prometheus.RecordAuthError("token_expired")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				log.Warn("Invalid token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// Store the claims in the context for later use
			c.Set(AdminContextKey, claims)
			log.Debug("JWT token validated successfully",
				zap.Uint("admin_id", claims.AdminID),
				zap.String("email", claims.Email))

			return next(c)
		}
	}
}

// AdminFromEcho retrieves the validated claims stored by JWTAuthMiddleware.
func AdminFromEcho(c echo.Context) (*jwtutil.AdminClaims, bool) {
	claims, ok := c.Get(AdminContextKey).(*jwtutil.AdminClaims)
	return claims, ok
}
