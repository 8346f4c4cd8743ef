package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/config"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware resolves the bearer token into the actor id and role.
// Tokens are issued elsewhere; only the HMAC signature is checked here.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token claims are invalid.")
			c.Abort()
			return
		}

		userID, ok := subject(claims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_payload", "Token subject is invalid.")
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		switch role {
		case models.RoleCustomer, models.RoleOwner, models.RoleAdmin:
		case "":
			role = models.RoleCustomer
		default:
			httperr.Unauthorized(c, "invalid_token_role", "Token role is unknown.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// subject reads "sub" as a JSON number or a numeric string.
func subject(claims jwt.MapClaims) (uint, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		if v <= 0 || v != float64(uint(v)) {
			return 0, false
		}
		return uint(v), true
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

// Actor returns the authenticated identity set by AuthMiddleware.
func Actor(c *gin.Context) authz.Actor {
	return authz.Actor{
		ID:   c.MustGet(ContextUserID).(uint),
		Role: c.GetString(ContextUserRole),
	}
}
