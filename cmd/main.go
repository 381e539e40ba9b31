// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai_flashcards/internal/config"
	"ai_flashcards/internal/handlers"
	"ai_flashcards/internal/llm"
	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/repository"
	"ai_flashcards/internal/service"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	level, ok := config.ParseLogLevel(config.Cfg.Log.Level)
	if !ok {
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}
	logLevel.Set(level)
	logger := config.NewLogger(os.Stderr, logLevel)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 1. Database
	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 2. Dependency Injection
	var completer llm.Completer
	if openaiClient, err := llm.NewOpenAIClient(config.Cfg.OpenAI); err != nil {
		// キーが無くてもサーバーは起動し、生成APIだけが 502 を返す
		slog.Warn("OpenAI client disabled", slog.Any("error", err))
	} else {
		completer = openaiClient
	}

	snapshotRepo := repository.NewGormSnapshotRepository()
	generationService := service.NewGenerationService(completer, &config.Cfg)
	deckStore := service.NewDeckStore(
		generationService,
		service.NewSnapshotPersister(db, snapshotRepo, config.Cfg.Deck.SnapshotKey),
	)
	if err := deckStore.Restore(middleware.WithLogger(context.Background(), logger)); err != nil {
		slog.Warn("Starting with an empty deck", slog.Any("error", err))
	}

	generationHandler := handlers.NewGenerationHandler(generationService)
	deckHandler := handlers.NewDeckHandler(deckStore, config.Cfg.Deck)

	// 3. Router
	router := handlers.NewRouter(&config.Cfg, logger, generationHandler, deckHandler, sqlDB)

	// 4. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: handlers.RequestTimeout(&config.Cfg) + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
