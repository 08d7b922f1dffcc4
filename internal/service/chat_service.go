package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shaktiaryan/wildlife-gallery/internal/repository"
)

const (
	chatModel       = "gpt-3.5-turbo"
	chatMaxTokens   = 500
	chatTemperature = 0.7
)

// CatalogLister supplies the creature summaries enumerated in the chat
// system prompt.
type CatalogLister interface {
	GetCreatureSummaries(ctx context.Context) ([]repository.CreatureSummary, error)
}

// ChatService proxies gallery questions to an OpenAI-compatible
// completion API, grounding the model with the current catalog.
type ChatService struct {
	catalog CatalogLister
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewChatService(catalog CatalogLister, apiKey, baseURL string) *ChatService {
	return &ChatService{
		catalog: catalog,
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Chat forwards a user message. viewing is the optional context string
// describing what the user is currently looking at.
func (s *ChatService) Chat(ctx context.Context, message, viewing string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required: %w", ErrValidation)
	}
	if s.apiKey == "" {
		return "", fmt.Errorf("chat service is not configured, set OPENAI_API_KEY: %w", ErrUnavailable)
	}

	prompt, err := s.systemPrompt(ctx, viewing)
	if err != nil {
		logger.Error().Err(err).Msg("Error building chat prompt")
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model: chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: message},
		},
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("Chat upstream request failed")
		return "", fmt.Errorf("chat upstream unreachable: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if parsed.Error != nil {
		logger.Error().Str("code", parsed.Error.Code).Str("message", parsed.Error.Message).Msg("Chat upstream error")
		switch parsed.Error.Code {
		case "insufficient_quota":
			return "", fmt.Errorf("API quota exceeded, check your API key and billing: %w", ErrUnavailable)
		case "invalid_api_key":
			return "", fmt.Errorf("invalid API key, check your configuration: %w", ErrUnavailable)
		}
		return "", fmt.Errorf("chat upstream error: %s", parsed.Error.Code)
	}

	if resp.StatusCode != http.StatusOK || len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat upstream returned status %d", resp.StatusCode)
	}

	reply := parsed.Choices[0].Message.Content
	if reply == "" {
		reply = "Sorry, I could not generate a response."
	}
	return reply, nil
}

func (s *ChatService) systemPrompt(ctx context.Context, viewing string) (string, error) {
	creatures, err := s.catalog.GetCreatureSummaries(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant for an animal and bird gallery website.\n")
	b.WriteString("You help users learn about various animals and birds. Be friendly, informative, and educational.\n\n")
	b.WriteString("Here are the animals and birds in our gallery:\n")
	for _, c := range creatures {
		desc := c.Description
		if len(desc) > 100 {
			desc = desc[:100]
		}
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(&b, "- %s (%s): %s...\n", c.Name, c.Category, desc)
	}
	if viewing != "" {
		fmt.Fprintf(&b, "\nCurrent context: The user is viewing %s\n", viewing)
	}
	b.WriteString("\nProvide helpful, accurate information about animals and birds. If asked about something not in our gallery,\n")
	b.WriteString("you can still provide general information but mention that it's not currently in our collection.")

	return b.String(), nil
}
