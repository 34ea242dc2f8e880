package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinicport/models"
	"clinicport/utils"
)

// Context keys the handlers read after authentication.
const (
	CtxAccountID = "accountID"
	CtxRole      = "role"
)

// JWTAuthMiddleware validates the bearer token and checks its hash
// against the auth session cache, so revoked tokens stop working
// before they expire. On success the account id and role land in the
// gin context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		accountID, role, err := utils.ExtractAccountFromToken(tokenString)
		if err != nil || accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		session, err := utils.GetAuthSession(utils.GetAuthCacheClient(), utils.HashToken(tokenString))
		if err != nil || session.AccountID != accountID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session revoked or expired"})
			return
		}

		c.Set(CtxAccountID, accountID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// DoctorOnlyMiddleware gates approver endpoints. Runs after
// JWTAuthMiddleware.
func DoctorOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != models.RoleDoctor {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Doctor role required"})
			return
		}
		c.Next()
	}
}
