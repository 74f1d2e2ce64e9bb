package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/andyrosty/diet-fitness/logger"
)

// SendJSONError sends a standardized JSON error response and logs the
// internal error. For 5xx responses the public message stays generic; the
// underlying error is only logged.
func SendJSONError(c *gin.Context, statusCode int, publicMsg string, internalError error) {
	if internalError != nil {
		logger.Errorf("handler error: status=%d message=%q path=%s err=%v",
			statusCode, publicMsg, c.Request.URL.Path, internalError)
	}

	if statusCode >= http.StatusInternalServerError && publicMsg == "" {
		publicMsg = "An unexpected error occurred. Please try again later."
	}

	c.AbortWithStatusJSON(statusCode, gin.H{"error": publicMsg})
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether the plaintext password matches the hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
