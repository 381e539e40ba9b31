// internal/handlers/deck_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"ai_flashcards/internal/config"
	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/model"
	"ai_flashcards/internal/service"
	"ai_flashcards/internal/webutil"
)

// DeckHandler はサーバー側で保持する学習セッションの操作API
type DeckHandler struct {
	service service.DeckService
	cfg     config.DeckConfig
}

func NewDeckHandler(s service.DeckService, cfg config.DeckConfig) *DeckHandler {
	return &DeckHandler{service: s, cfg: cfg}
}

// GetDeck は現在のセッション状態を返す
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, h.service.State())
}

// LoadDeck は新しいデッキを生成して差し替える。枚数は [min_cards, max_cards] に丸める
func (h *DeckHandler) LoadDeck(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "LoadDeck"))

	var req model.LoadDeckRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if req.Count == 0 {
		req.Count = h.cfg.DefaultCards
	}
	req.Count = model.ClampCount(req.Count, h.cfg.MinCards, h.cfg.MaxCards)

	state, err := h.service.LoadDeck(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, state)
}

// MarkCurrent は表示中のカードの正誤を記録する
func (h *DeckHandler) MarkCurrent(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "MarkCurrent"))

	var req model.MarkRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	state, err := h.service.MarkCurrent(r.Context(), *req.IsCorrect)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, state)
}

// RegenerateCurrent は表示中のカードを作り直す
func (h *DeckHandler) RegenerateCurrent(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "RegenerateCurrent"))

	state, err := h.service.RegenerateCurrent(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, state)
}

// Reset はデッキを空にする
func (h *DeckHandler) Reset(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, h.service.Reset(r.Context()))
}
