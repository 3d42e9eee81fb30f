package chatbot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContentExtractsFirstCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-2.0-flash-lite:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "Halo, ada yang bisa Toto bantu?"}]}}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	client := NewGeminiClient("test-key").WithBaseURL(server.URL)
	reply, err := client.GenerateContent(context.Background(), "Halo")
	require.NoError(t, err)
	assert.Equal(t, "Halo, ada yang bisa Toto bantu?", reply)
}

func TestGenerateContentEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	t.Cleanup(server.Close)

	client := NewGeminiClient("test-key").WithBaseURL(server.URL)
	reply, err := client.GenerateContent(context.Background(), "Halo")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestGenerateContentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`))
	}))
	t.Cleanup(server.Close)

	client := NewGeminiClient("bad-key").WithBaseURL(server.URL)
	_, err := client.GenerateContent(context.Background(), "Halo")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "API key not valid", apiErr.Message)
}

func TestWithModelOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-pro:generateContent", r.URL.Path)
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewGeminiClient("k").WithBaseURL(server.URL).WithModel("gemini-pro")
	reply, err := client.GenerateContent(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)

	// Empty override keeps the default.
	client = NewGeminiClient("k").WithModel("")
	assert.NotNil(t, client)
}
