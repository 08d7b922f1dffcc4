package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaktiaryan/wildlife-gallery/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	summaries []repository.CreatureSummary
}

func (c *fakeCatalog) GetCreatureSummaries(_ context.Context) ([]repository.CreatureSummary, error) {
	return c.summaries, nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{summaries: []repository.CreatureSummary{
		{Name: "Lion", Category: "Animals", Description: "The king of the jungle"},
		{Name: "Eagle", Category: "Birds", Description: "A majestic bird of prey"},
	}}
}

func chatUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestChatEmptyMessage(t *testing.T) {
	svc := NewChatService(testCatalog(), "sk-test", "http://unused")

	_, err := svc.Chat(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChatMissingAPIKey(t *testing.T) {
	svc := NewChatService(testCatalog(), "", "http://unused")

	_, err := svc.Chat(context.Background(), "tell me about lions", "")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestChatForwardsCatalogAndContext(t *testing.T) {
	var captured chatRequest
	srv := chatUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Lions are big cats."}},
			},
		})
	})

	svc := NewChatService(testCatalog(), "sk-test", srv.URL)

	reply, err := svc.Chat(context.Background(), "tell me about lions", "Lion")
	require.NoError(t, err)
	assert.Equal(t, "Lions are big cats.", reply)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "Lion (Animals)")
	assert.Contains(t, captured.Messages[0].Content, "Eagle (Birds)")
	assert.Contains(t, captured.Messages[0].Content, "The user is viewing Lion")
	assert.Equal(t, "tell me about lions", captured.Messages[1].Content)
	assert.Equal(t, chatModel, captured.Model)
	assert.Equal(t, chatMaxTokens, captured.MaxTokens)
}

func TestChatQuotaError(t *testing.T) {
	srv := chatUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(429)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "quota exceeded", "code": "insufficient_quota"},
		})
	})

	svc := NewChatService(testCatalog(), "sk-test", srv.URL)

	_, err := svc.Chat(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "quota")
}

func TestChatInvalidKeyError(t *testing.T) {
	srv := chatUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "bad key", "code": "invalid_api_key"},
		})
	})

	svc := NewChatService(testCatalog(), "sk-test", srv.URL)

	_, err := svc.Chat(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestChatUpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	svc := NewChatService(testCatalog(), "sk-test", srv.URL)

	_, err := svc.Chat(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}
