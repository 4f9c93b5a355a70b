package middleware

import (
	"net/http"
	"strings"

	"gatekeeper/internal/shared/config"
	"gatekeeper/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const staffIDKey = "staff_id"

// JWTAuth creates a JWT authentication middleware
func JWTAuth() gin.HandlerFunc {
	return JWTAuthWithConfig(config.Load())
}

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errMsg := parseBearer(c, cfg)
		if claims == nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, errMsg, nil, nil)
			c.Abort()
			return
		}

		applyClaims(c, claims)
		c.Next()
	}
}

// StaffContext resolves staff identity when a Bearer token is present but
// never rejects the request: the door also runs unauthenticated kiosks, and
// their scans are simply recorded without an admitting staff member.
func StaffContext() gin.HandlerFunc {
	cfg := config.Load()
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, _ := parseBearer(c, cfg); claims != nil {
				applyClaims(c, claims)
			}
		}
		c.Next()
	}
}

// StaffIDFromContext returns the authenticated staff member's ID, or nil for
// kiosk requests.
func StaffIDFromContext(c *gin.Context) *uuid.UUID {
	raw, exists := c.Get(staffIDKey)
	if !exists {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// RequireRoles middleware checks if the caller has any of the required roles
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("staff_role")
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "staff role not found in context", nil, nil)
			c.Abort()
			return
		}

		hasRole := false
		for _, required := range requiredRoles {
			if role.(string) == required {
				hasRole = true
				break
			}
		}

		if !hasRole {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func parseBearer(c *gin.Context, cfg *config.Config) (jwt.MapClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "Authorization header is required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "authorization header format must be Bearer {token}"
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})

	if err != nil || !token.Valid {
		return nil, "invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "invalid token claims"
	}
	return claims, ""
}

func applyClaims(c *gin.Context, claims jwt.MapClaims) {
	if id, ok := claims["staff_id"].(string); ok {
		c.Set(staffIDKey, id)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("staff_role", role)
	}
}
