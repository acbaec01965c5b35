package middleware

import (
	"net/http"
	"strings"

	"bitbuzz/internal/service"

	"github.com/gin-gonic/gin"
)

// PasswordHeader lets scripted callers unlock admin routes without a token.
const PasswordHeader = "X-Admin-Password"

const adminKey = "admin"

// AdminAuth admits a request carrying a valid admin bearer token or the
// admin password header. Everything else gets 401.
func AdminAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			if !auth.VerifyToken(h[7:]) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.Set(adminKey, true)
			c.Next()
			return
		}
		if pw := c.GetHeader(PasswordHeader); pw != "" {
			if ok, _ := auth.Authenticate(pw); ok {
				c.Set(adminKey, true)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrWrongPassword.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin mode required"})
	}
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(adminKey)
}
