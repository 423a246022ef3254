package middleware

import (
	"strings"

	"matchboxd_backend/internal/appErrors"
	"matchboxd_backend/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userID"
	claimsKey = "claims"
)

// AuthMiddleware validates the bearer token and resolves the caller once.
// Handlers downstream read the identity from the context instead of parsing
// the token again.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			appErrors.HandleError(c, appErrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			appErrors.HandleError(c, appErrors.ErrInvalidToken)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			appErrors.HandleError(c, appErrors.ErrInvalidToken)
			return
		}

		c.Set(userIDKey, userID)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id from the context.
func GetUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}

	id, ok := val.(uint)
	if !ok {
		return 0, false
	}
	return id, true
}

// GetClaims returns the parsed token claims from the context.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}

	claims, ok := val.(*auth.Claims)
	return claims, ok
}
