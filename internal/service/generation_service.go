//go:generate mockery --name GenerationService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai_flashcards/internal/config"
	"ai_flashcards/internal/llm"
	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/model"
)

const DefaultFormat = "qa"

// GenerationService はトピックからカードを作る (デッキ一括生成と1枚再生成)
type GenerationService interface {
	GenerateCards(ctx context.Context, req *model.GenerateRequest) ([]model.Card, error)
	RegenerateCard(ctx context.Context, req *model.RegenerateRequest) (model.CardContent, error)
}

type generationService struct {
	completer llm.Completer // APIキー未設定なら nil
	cfg       *config.Config
}

func NewGenerationService(completer llm.Completer, cfg *config.Config) GenerationService {
	return &generationService{
		completer: completer,
		cfg:       cfg,
	}
}

func (s *generationService) GenerateCards(ctx context.Context, req *model.GenerateRequest) ([]model.Card, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Enter a topic first.", "topic", model.ErrEmptyTopic)
	}
	n := req.N
	if n <= 0 {
		n = s.cfg.Deck.DefaultCards
	}
	level := string(req.Level.OrDefault())
	format := req.Format
	if format == "" {
		format = DefaultFormat
	}

	logger := middleware.GetLogger(ctx).With("topic", topic, "n", n, "level", level)
	if s.completer == nil {
		logger.Error("Generation requested but OpenAI client is not configured")
		return nil, upstreamError(model.ErrUnavailable)
	}

	raw, err := s.completer.Complete(ctx, llm.DeckPrompt(topic, n, level, format, s.cfg.OpenAI.GenerateTemperature))
	if err != nil {
		logger.Error("Chat completion failed", "error", err)
		return nil, upstreamError(err)
	}

	cards, err := llm.ParseCardList(raw, n)
	if err != nil {
		logger.Warn("Model response could not be interpreted as a card list", "error", err)
		return nil, upstreamError(err)
	}

	logger.Info("Successfully generated cards", "count", len(cards))
	return cards, nil
}

func (s *generationService) RegenerateCard(ctx context.Context, req *model.RegenerateRequest) (model.CardContent, error) {
	topic := strings.TrimSpace(req.Topic)
	tag := strings.TrimSpace(req.Tag)
	if topic == "" && tag == "" {
		return model.CardContent{}, model.NewAppError("VALIDATION_ERROR", "Enter a topic first.", "topic", model.ErrEmptyTopic)
	}
	if tag == "" {
		tag = model.DefaultTag
	}
	level := string(req.Level.OrDefault())
	format := req.Format
	if format == "" {
		format = DefaultFormat
	}

	logger := middleware.GetLogger(ctx).With("topic", topic, "tag", tag, "level", level)
	if s.completer == nil {
		logger.Error("Regeneration requested but OpenAI client is not configured")
		return model.CardContent{}, upstreamError(model.ErrUnavailable)
	}

	raw, err := s.completer.Complete(ctx, llm.RegeneratePrompt(topic, tag, level, format, s.cfg.OpenAI.RegenerateTemperature))
	if err != nil {
		logger.Error("Chat completion failed", "error", err)
		return model.CardContent{}, upstreamError(err)
	}

	card, err := llm.ParseSingleCard(raw, tag)
	if err != nil {
		logger.Warn("Model response could not be interpreted as a card", "error", err)
		return model.CardContent{}, upstreamError(err)
	}

	logger.Info("Successfully regenerated card")
	return card, nil
}

// upstreamError は生成APIまわりの失敗をクライアント向けのエラーに包む。
// ParseError も UpstreamError として扱う。
func upstreamError(err error) error {
	switch {
	case errors.Is(err, model.ErrParse):
		return model.NewAppError("PARSE_ERROR", "The generator returned a response that is not valid JSON.", "", fmt.Errorf("%w: %w", model.ErrUpstream, err))
	case errors.Is(err, model.ErrUnavailable):
		return model.NewAppError("UPSTREAM_UNAVAILABLE", "Card generation is not configured (OPENAI_API_KEY is missing).", "", fmt.Errorf("%w: %w", model.ErrUpstream, err))
	case errors.Is(err, model.ErrUpstream):
		return model.NewAppError("UPSTREAM_ERROR", "Card generation failed. Please try again.", "", err)
	default:
		return model.NewAppError("UPSTREAM_ERROR", "Card generation failed. Please try again.", "", fmt.Errorf("%w: %w", model.ErrUpstream, err))
	}
}
