package middleware

import (
	"net/http"
	"strings"

	"peerperm/internal/application/auth"
	"peerperm/internal/config"

	"github.com/gin-gonic/gin"
)

const (
	// SubjectContextKey is the key used to store the token subject in gin context
	SubjectContextKey = "subject"
)

// AuthMiddleware creates a middleware for admin API authentication
func AuthMiddleware(authService *auth.Service, cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// If auth is disabled, continue as a default operator
		if !cfg.Enabled {
			c.Set(SubjectContextKey, "admin")
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		subject, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(SubjectContextKey, subject)
		c.Next()
	}
}
