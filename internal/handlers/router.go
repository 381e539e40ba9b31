// internal/handlers/router.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ai_flashcards/internal/config"
	"ai_flashcards/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Pinger はヘルスチェックで疎通を確認する相手 (*sql.DB など)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RequestTimeout はリクエスト全体の上限。生成APIの待ち時間に余裕を足したもの
func RequestTimeout(cfg *config.Config) time.Duration {
	return cfg.OpenAI.Timeout + 15*time.Second
}

// NewRouter はミドルウェアとルーティングを組み立てる
func NewRouter(cfg *config.Config, logger *slog.Logger, gen *GenerationHandler, deck *DeckHandler, db Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(RequestTimeout(cfg)))

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", gen.Generate)
		r.Post("/regenerate", gen.Regenerate)

		r.Route("/deck", func(r chi.Router) {
			r.Get("/", deck.GetDeck)
			r.Post("/", deck.LoadDeck)
			r.Delete("/", deck.Reset)
			r.Post("/mark", deck.MarkCurrent)
			r.Post("/regenerate", deck.RegenerateCurrent)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				middleware.GetLogger(r.Context()).Error("Health check failed: could not ping DB", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
