package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/korbo/claude-chats/internal/config"
)

const requestTimeout = 15 * time.Second

// Summarizer produces a short label for one chat message.
type Summarizer interface {
	Summarize(ctx context.Context, message string) (string, error)
}

// Client talks to an OpenAI-compatible completion endpoint. The default
// config points it at Gemini's compatibility layer.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a summarization client from the static config.
func NewClient(apiKey string, cfg config.Summary) *Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(clientConfig),
		model: cfg.Model,
	}
}

// Summarize asks for a 3-6 word topic label for message.
func (c *Client) Summarize(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: "Summarize this chat message in 3-6 words. " +
					"Just the topic, no fluff:\n\n" + message,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarize request: empty response")
	}

	label := strings.TrimSpace(resp.Choices[0].Message.Content)
	label = strings.Trim(label, `"`)
	if label == "" {
		return "", fmt.Errorf("summarize request: blank summary")
	}
	return label, nil
}
