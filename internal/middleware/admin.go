package middleware

import (
	"net/http"

	"roundly/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the authenticated user has an ADMIN account.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountType, exists := c.Get("account_type")
		if !exists || accountType.(string) != domain.AccountTypeAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
