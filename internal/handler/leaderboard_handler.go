package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/service"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Handles GET /leaderboard - reporter ranking, optionally limited with
// ?limit=N (the sidebar asks for 5).
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit := 0
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	users, err := h.leaderboardService.Top(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": users})
}
