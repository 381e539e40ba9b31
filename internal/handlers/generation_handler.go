// internal/handlers/generation_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/model"
	"ai_flashcards/internal/service"
	"ai_flashcards/internal/webutil"
)

// GenerationHandler はカード生成API (/api/generate, /api/regenerate) のハンドラ
type GenerationHandler struct {
	service service.GenerationService
}

func NewGenerationHandler(s service.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: s}
}

// Generate はトピックからカードを一括生成する
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Generate"))

	var req model.GenerateRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cards, err := h.service.GenerateCards(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []model.Card{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.GenerateResponse{Cards: cards})
}

// Regenerate は1枚だけ作り直す
func (h *GenerationHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Regenerate"))

	var req model.RegenerateRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	card, err := h.service.RegenerateCard(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.RegenerateResponse{Card: card})
}
