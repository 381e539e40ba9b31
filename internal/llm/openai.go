// internal/llm/openai.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"ai_flashcards/internal/config"
	"ai_flashcards/internal/model"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient は go-openai を使った Completer の実装
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient は設定からクライアントを作る。APIキーが無い場合は ErrUnavailable
func NewOpenAIClient(cfg config.OpenAIConfig) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("llm.NewOpenAIClient: OPENAI_API_KEY is not set: %w", model.ErrUnavailable)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = config.DefaultOpenAIModel
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  modelName,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		slog.Warn("Chat completion returned no choices", "model", c.model, "id", resp.ID)
		return req.Fallback, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyError は go-openai のエラーを ErrUpstream でラップする
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: openai error (status %d): %s", model.ErrUpstream, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: openai request failed (status %d): %v", model.ErrUpstream, reqErr.HTTPStatusCode, reqErr.Err)
	}
	return fmt.Errorf("%w: %v", model.ErrUpstream, err)
}
