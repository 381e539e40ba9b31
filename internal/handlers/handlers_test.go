package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai_flashcards/internal/config"
	"ai_flashcards/internal/handlers"
	"ai_flashcards/internal/model"
	"ai_flashcards/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func testConfig() *config.Config {
	return &config.Config{
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET", "POST", "DELETE"}},
		OpenAI: config.OpenAIConfig{Timeout: 5 * time.Second},
		Deck: config.DeckConfig{
			MinCards:     config.DefaultMinCards,
			MaxCards:     config.DefaultMaxCards,
			DefaultCards: config.DefaultCardCount,
		},
	}
}

func newTestRouter(t *testing.T, pinger handlers.Pinger) (http.Handler, *mocks.GenerationService, *mocks.DeckService) {
	t.Helper()
	cfg := testConfig()
	gen := mocks.NewGenerationService(t)
	deck := mocks.NewDeckService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := handlers.NewRouter(cfg, logger, handlers.NewGenerationHandler(gen), handlers.NewDeckHandler(deck, cfg.Deck), pinger)
	return router, gen, deck
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error
}

func TestGenerationHandler_Generate(t *testing.T) {
	cards := []model.Card{{ID: 1, Q: "Q", A: "A", Hint: "H", Tag: "T", Box: model.Box1}}

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(m *mocks.GenerationService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "正常系: カード一覧を返す",
			body: map[string]interface{}{"topic": "Go", "n": 3, "level": "beginner", "format": "qa"},
			setupMock: func(m *mocks.GenerationService) {
				m.On("GenerateCards", mock.Anything, &model.GenerateRequest{Topic: "Go", N: 3, Level: model.LevelBeginner, Format: "qa"}).
					Return(cards, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "異常系: topic が無い",
			body:       map[string]interface{}{"n": 3},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "異常系: 壊れたJSON",
			body:       `{"topic":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name: "異常系: 上流エラーは502",
			body: map[string]interface{}{"topic": "Go"},
			setupMock: func(m *mocks.GenerationService) {
				m.On("GenerateCards", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError("UPSTREAM_ERROR", "Card generation failed. Please try again.", "", model.ErrUpstream)).Once()
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, gen, _ := newTestRouter(t, nil)
			if tt.setupMock != nil {
				tt.setupMock(gen)
			}

			rr := doJSON(t, router, http.MethodPost, "/api/generate", tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rr).Code)
				return
			}
			var resp model.GenerateResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, cards, resp.Cards)
		})
	}
}

func TestGenerationHandler_Regenerate(t *testing.T) {
	router, gen, _ := newTestRouter(t, nil)
	gen.On("RegenerateCard", mock.Anything, &model.RegenerateRequest{Topic: "Go", Level: model.LevelAdvanced, Tag: "maps"}).
		Return(model.CardContent{Q: "Q", A: "A", Hint: "H", Tag: "maps"}, nil).Once()

	rr := doJSON(t, router, http.MethodPost, "/api/regenerate", map[string]interface{}{"topic": "Go", "level": "advanced", "tag": "maps"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"card":{"q":"Q","a":"A","hint":"H","tag":"maps"}}`, rr.Body.String())
}

func TestDeckHandler_LoadDeck_ClampsCount(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantCount int
	}{
		{name: "未指定は既定枚数", count: 0, wantCount: config.DefaultCardCount},
		{name: "下限に丸める", count: 1, wantCount: config.DefaultMinCards},
		{name: "上限に丸める", count: 500, wantCount: config.DefaultMaxCards},
		{name: "範囲内はそのまま", count: 12, wantCount: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, deck := newTestRouter(t, nil)
			state := &model.DeckState{DeckID: uuid.New(), Cards: []model.Card{{ID: 1, Box: model.Box1}}, LastTopic: "Go", Level: model.LevelBeginner}
			deck.On("LoadDeck", mock.Anything, mock.MatchedBy(func(r *model.LoadDeckRequest) bool {
				return r.Topic == "Go" && r.Count == tt.wantCount
			})).Return(state, nil).Once()

			rr := doJSON(t, router, http.MethodPost, "/api/deck", map[string]interface{}{"topic": "Go", "count": tt.count})
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var got model.DeckState
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, state.DeckID, got.DeckID)
		})
	}
}

func TestDeckHandler_MarkCurrent(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		router, _, deck := newTestRouter(t, nil)
		deck.On("MarkCurrent", mock.Anything, false).Return(&model.DeckState{Current: 1}, nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/deck/mark", map[string]interface{}{"is_correct": false})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"current":1`)
	})

	t.Run("異常系: is_correct が無い", func(t *testing.T) {
		router, _, _ := newTestRouter(t, nil)

		rr := doJSON(t, router, http.MethodPost, "/api/deck/mark", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		detail := decodeError(t, rr)
		assert.Equal(t, "is_correct", detail.Field)
	})

	t.Run("異常系: 空のデッキは409", func(t *testing.T) {
		router, _, deck := newTestRouter(t, nil)
		deck.On("MarkCurrent", mock.Anything, true).
			Return(&model.DeckState{}, model.NewAppError("EMPTY_DECK", "There are no cards yet. Generate a deck first.", "", model.ErrEmptyDeck)).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/deck/mark", map[string]interface{}{"is_correct": true})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "EMPTY_DECK", decodeError(t, rr).Code)
	})
}

func TestDeckHandler_OtherRoutes(t *testing.T) {
	router, _, deck := newTestRouter(t, nil)
	deck.On("State").Return(&model.DeckState{LastTopic: "Go"}).Once()
	deck.On("RegenerateCurrent", mock.Anything).
		Return(&model.DeckState{}, model.NewAppError("SUPERSEDED", "The deck changed while regenerating.", "", model.ErrSuperseded)).Once()
	deck.On("Reset", mock.Anything).Return(&model.DeckState{Cards: []model.Card{}}).Once()

	rr := doJSON(t, router, http.MethodGet, "/api/deck", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"last_topic":"Go"`)

	rr = doJSON(t, router, http.MethodPost, "/api/deck/regenerate", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doJSON(t, router, http.MethodDelete, "/api/deck", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"cards":[]`)
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter(t, fakePinger{})
	rr := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	router, _, _ = newTestRouter(t, fakePinger{err: errors.New("down")})
	rr = doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCORS_Preflight(t *testing.T) {
	router, _, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
