package handler

import (
	"net/http"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Handles POST /chat - forwards a message to the assistant. The reply is
// always 200 with a bot message; assistant failures come back as canned
// replies, not HTTP errors.
func (h *ChatHandler) Send(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.chatService.Send(c.Request.Context(), req.Message)
	if err != nil {
		// Send only fails without a session; assistant failures arrive as
		// canned replies, never as errors.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Reply: reply})
}
