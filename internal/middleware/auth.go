package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/damoang/angple-search/internal/common"
	"github.com/damoang/angple-search/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const callerIDKey = "callerID"

// OptionalJWTAuth attaches the caller id when a Bearer token is present.
// No header means anonymous; a header that does not verify is rejected with 401.
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.V2ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		// 3. Verify token
		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.V2ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.V2ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		accountID, ok := claims.GetAccountID()
		if !ok {
			common.V2ErrorResponse(c, http.StatusUnauthorized, "Invalid token", common.ErrInvalidToken)
			c.Abort()
			return
		}

		// 4. Store caller in context
		c.Set(callerIDKey, accountID)
		c.Next()
	}
}

// GetCallerID returns the authenticated caller id, or nil for anonymous requests
func GetCallerID(c *gin.Context) *int64 {
	v, exists := c.Get(callerIDKey)
	if !exists {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}
