// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/model"

	"github.com/tidwall/gjson"
)

// Client はリモートの生成API (/api/generate, /api/regenerate) を呼ぶ。
// service.GenerationService を満たすので DeckStore にそのまま渡せる。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) GenerateCards(ctx context.Context, req *model.GenerateRequest) ([]model.Card, error) {
	body, err := c.post(ctx, "/api/generate", req)
	if err != nil {
		return nil, err
	}

	cardsRes := gjson.GetBytes(body, "cards")
	if !cardsRes.IsArray() {
		return nil, upstream("The generation service returned an unexpected response.", fmt.Errorf("%w: response has no cards array", model.ErrUpstream))
	}
	var cards []model.Card
	if err := json.Unmarshal([]byte(cardsRes.Raw), &cards); err != nil {
		return nil, upstream("The generation service returned an unexpected response.", fmt.Errorf("%w: %v", model.ErrUpstream, err))
	}
	for i := range cards {
		cards[i] = withContent(cards[i], cards[i].Content().Truncated())
	}
	return cards, nil
}

func (c *Client) RegenerateCard(ctx context.Context, req *model.RegenerateRequest) (model.CardContent, error) {
	body, err := c.post(ctx, "/api/regenerate", req)
	if err != nil {
		return model.CardContent{}, err
	}

	cardRes := gjson.GetBytes(body, "card")
	if !cardRes.IsObject() {
		return model.CardContent{}, upstream("The generation service returned an unexpected response.", fmt.Errorf("%w: response has no card object", model.ErrUpstream))
	}
	var card model.CardContent
	if err := json.Unmarshal([]byte(cardRes.Raw), &card); err != nil {
		return model.CardContent{}, upstream("The generation service returned an unexpected response.", fmt.Errorf("%w: %v", model.ErrUpstream, err))
	}
	return card.Truncated(), nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	logger := middleware.GetLogger(ctx).With("url", c.baseURL+path)

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("client.post: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("client.post: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Generation service unreachable", "error", err)
		return nil, upstream("Could not reach the generation service.", fmt.Errorf("%w: %v", model.ErrUpstream, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream("Could not read the generation service response.", fmt.Errorf("%w: %v", model.ErrUpstream, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(body)
		logger.Warn("Generation service returned an error", "status", resp.StatusCode, "message", msg)
		if resp.StatusCode == http.StatusBadRequest {
			return nil, model.NewAppError("VALIDATION_ERROR", msg, gjson.GetBytes(body, "error.field").String(), model.ErrInvalidInput)
		}
		return nil, upstream(msg, fmt.Errorf("%w: status %d", model.ErrUpstream, resp.StatusCode))
	}
	return body, nil
}

// errorMessage はエラーレスポンスから表示用のメッセージを取り出す。
// {"error":{"message":...}} と {"error":"..."} のどちらにも対応する
func errorMessage(body []byte) string {
	errRes := gjson.GetBytes(body, "error")
	switch {
	case errRes.IsObject() && errRes.Get("message").String() != "":
		return errRes.Get("message").String()
	case errRes.Type == gjson.String && errRes.Str != "":
		return errRes.Str
	default:
		return "Card generation failed. Please try again."
	}
}

func upstream(msg string, err error) error {
	return model.NewAppError("UPSTREAM_ERROR", msg, "", err)
}

func withContent(c model.Card, content model.CardContent) model.Card {
	c.Q, c.A, c.Hint, c.Tag = content.Q, content.A, content.Hint, content.Tag
	return c
}
