package service

import (
	"context"
	"errors"
	"log"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/chatbot"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/session"
)

// chatPreamble frames every user message before it reaches the model. Toto
// always answers in Indonesian.
const chatPreamble = "You are Toto, a helpful chatbot assistant for Lestari.in, an environmental monitoring platform focused on environmental health and sustainability. You help users with information about environmental reports, waste management, water quality, and environmental issues. Always respond in Indonesian language and be friendly and informative. User message: "

// Canned replies for the three failure shapes: unusable response body, a
// structured API error, and a transport failure.
const (
	chatFallbackEmpty      = "Maaf, saya tidak dapat memproses pesan Anda saat ini."
	chatFallbackError      = "Maaf, Terjadi kesalahan saat memproses pesan."
	chatFallbackConnection = "Maaf, terjadi kesalahan koneksi. Silakan coba lagi."
)

// ChatService fronts the Gemini assistant. Failures never propagate as
// errors to the UI: every failure shape maps to a canned bot reply so the
// conversation keeps flowing.
type ChatService struct {
	gemini  *chatbot.GeminiClient
	session *session.Session
}

func NewChatService(gemini *chatbot.GeminiClient, sess *session.Session) *ChatService {
	return &ChatService{gemini: gemini, session: sess}
}

// Send forwards a user message and returns the bot's reply.
func (s *ChatService) Send(ctx context.Context, message string) (string, error) {
	if !s.session.Authenticated() {
		return "", ErrNotAuthenticated
	}

	reply, err := s.gemini.GenerateContent(ctx, chatPreamble+message)
	if err != nil {
		log.Printf("chatbot: %v", err)

		var apiErr *chatbot.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Message != "" {
				return "Maaf, " + apiErr.Message, nil
			}
			return chatFallbackError, nil
		}
		return chatFallbackConnection, nil
	}

	if reply == "" {
		return chatFallbackEmpty, nil
	}
	return reply, nil
}
