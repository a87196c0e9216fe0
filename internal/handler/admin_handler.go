package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lead-capture-go/internal/auth"
	"lead-capture-go/pkg/model"
)

// AdminHandler handles admin credential endpoints
type AdminHandler struct {
	credentials *auth.CredentialStore
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(credentials *auth.CredentialStore) *AdminHandler {
	return &AdminHandler{credentials: credentials}
}

// Login verifies the shared admin secret. The first secret ever presented
// bootstraps the store and is reported distinctly so the UI can say so.
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Password missing"})
		return
	}

	switch h.credentials.VerifyOrBootstrap(req.Password) {
	case auth.Bootstrapped:
		c.JSON(http.StatusOK, gin.H{"status": "new_password_set"})
	case auth.Accepted:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Wrong password"})
	}
}

// ChangePassword rotates the shared admin secret
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req model.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Both passwords required"})
		return
	}

	if !h.credentials.ChangeSecret(req.OldPassword, req.NewPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Wrong password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
