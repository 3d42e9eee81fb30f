package handler

import (
	"errors"
	"net/http"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/service"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/upstream"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Handles POST /auth/login - exchanges admin credentials for a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = "Invalid credentials"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to connect to server. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// Handles POST /auth/refresh - replaces the stored access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	access, err := h.authService.RefreshToken(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// Handles POST /auth/logout - clears the session, nothing upstream.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Health check endpoint for service status monitoring.
func (h *AuthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
