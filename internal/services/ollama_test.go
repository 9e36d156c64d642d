package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/genieai/genie-web/internal/models"
	"github.com/genieai/genie-web/internal/services"
	"github.com/stretchr/testify/require"
)

func TestOllamaComplete(t *testing.T) {
	var got struct {
		Model    string         `json:"model"`
		Stream   bool           `json:"stream"`
		Options  map[string]any `json:"options"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","created_at":"2024-01-01T00:00:00Z",` +
			`"message":{"role":"assistant","content":"Shazam!"},"done":true}` + "\n"))
	}))
	defer srv.Close()

	o, err := services.NewOllama(srv.URL, "llama3", services.Parameters{MaxTokens: 300, Temperature: 0.8}, discardLogger())
	require.NoError(t, err)

	text, err := o.Complete(context.Background(), []models.Message{
		{Role: models.RoleSystem, Content: "persona"},
		{Role: models.RoleUser, Content: "wish"},
	})
	require.NoError(t, err)
	require.Equal(t, "Shazam!", text)

	require.Equal(t, "llama3", got.Model)
	require.False(t, got.Stream)
	require.InDelta(t, 300, got.Options["num_predict"], 0)
	require.InDelta(t, 0.8, got.Options["temperature"], 0.0001)
	require.Len(t, got.Messages, 2)
}

func TestOllamaCompleteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'missing' not found"}`))
	}))
	defer srv.Close()

	o, err := services.NewOllama(srv.URL, "missing", services.Parameters{}, discardLogger())
	require.NoError(t, err)

	_, err = o.Complete(context.Background(), []models.Message{{Role: models.RoleUser, Content: "wish"}})
	require.Error(t, err)
}

func TestNewOllamaInvalidHost(t *testing.T) {
	_, err := services.NewOllama("http://[::1", "llama3", services.Parameters{}, discardLogger())
	require.Error(t, err)
}
