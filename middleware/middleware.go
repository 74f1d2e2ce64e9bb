package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andyrosty/diet-fitness/logger"
	"github.com/andyrosty/diet-fitness/repository"
	"github.com/andyrosty/diet-fitness/services"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
)

// Logger is a Gin middleware for logging HTTP requests and responses.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		c.Writer.Header().Set("X-Response-Time", latency.String())

		logger.Infof("%3d | %13v | %15s | %-7s %s",
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.RequestURI,
		)
	}
}

// Cors is a Gin middleware for enabling Cross-Origin Resource Sharing.
// It allows requests from any origin.
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequireAuth guards a route group behind bearer-token authentication.
// It verifies the token, resolves the subject to a live user, and stores
// the user's ID and username in the request context. Every failure mode
// is a plain 401; no detail leaks to the client.
func RequireAuth(tokens services.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		subject, ok := tokens.Verify(tokenString)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := users.FindByUsername(c.Request.Context(), subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			return
		}
		if user == nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUsernameKey, user.Username)
		c.Next()
	}
}
