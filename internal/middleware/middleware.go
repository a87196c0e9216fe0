package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lead-capture-go/internal/auth"
)

// RequestIDHeader is echoed on every response for log correlation
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request id to the context and response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AdminGate rejects admin-surface calls until the credential store has been
// bootstrapped. There are no per-request credentials to check beyond that.
func AdminGate(credentials *auth.CredentialStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !credentials.IsBootstrapped() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Not logged in",
			})
			return
		}
		c.Next()
	}
}
