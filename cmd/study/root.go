package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ai_flashcards/internal/client"
	"ai_flashcards/internal/config"
	"ai_flashcards/internal/llm"
	"ai_flashcards/internal/middleware"
	"ai_flashcards/internal/repository"
	"ai_flashcards/internal/service"

	"github.com/spf13/cobra"
)

var (
	configDir string
	serverURL string
	verbose   bool
)

var _ service.GenerationService = (*client.Client)(nil)

var rootCmd = &cobra.Command{
	Use:   "study",
	Short: "Generate AI flashcards and review them with Leitner boxes",
	Long: `study generates flashcards on any topic with a language model and
schedules them with five Leitner boxes, showing weaker cards first.

Generation runs in-process with OPENAI_API_KEY, or through a running
server when --server is given. The session is saved after every change.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "directory containing config.yaml")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "base URL of a flashcards server (e.g. http://localhost:3001)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// session はコマンド1回分の依存関係
type session struct {
	ctx   context.Context
	store service.DeckService
	close func()
}

// openSession は設定を読み込み、保存済みのセッションを復元した DeckStore を用意する
func openSession() (*session, error) {
	if err := config.LoadConfig(configDir); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := config.NewLogger(os.Stderr, level)
	slog.SetDefault(logger)
	ctx := middleware.WithLogger(context.Background(), logger)

	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	var generator service.GenerationService
	if serverURL != "" {
		generator = client.New(serverURL, config.Cfg.OpenAI.Timeout+15*time.Second)
	} else {
		// キーが無い場合、status や reset は動き、生成だけがエラーになる
		var completer llm.Completer
		if openaiClient, err := llm.NewOpenAIClient(config.Cfg.OpenAI); err != nil {
			logger.Debug("OpenAI client disabled", "error", err)
		} else {
			completer = openaiClient
		}
		generator = service.NewGenerationService(completer, &config.Cfg)
	}

	store := service.NewDeckStore(
		generator,
		service.NewSnapshotPersister(db, repository.NewGormSnapshotRepository(), config.Cfg.Deck.SnapshotKey),
	)
	if err := store.Restore(ctx); err != nil {
		closeDB()
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	return &session{ctx: ctx, store: store, close: closeDB}, nil
}
