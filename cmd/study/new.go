package main

import (
	"fmt"
	"io"

	"ai_flashcards/internal/config"
	"ai_flashcards/internal/model"

	"github.com/spf13/cobra"
)

var (
	newCount int
	newLevel string
)

var newCmd = &cobra.Command{
	Use:   "new <topic>",
	Short: "Generate a new deck on a topic (replaces the current deck)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := model.Level(newLevel)
		if !level.IsValid() {
			return fmt.Errorf("unknown level %q (beginner, intermediate or advanced)", newLevel)
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		count := newCount
		if count == 0 {
			count = config.Cfg.Deck.DefaultCards
		}
		count = model.ClampCount(count, config.Cfg.Deck.MinCards, config.Cfg.Deck.MaxCards)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✨ Generating %d %s cards on %q...\n", count, level, args[0])
		state, err := s.store.LoadDeck(s.ctx, &model.LoadDeckRequest{Topic: args[0], Count: count, Level: level})
		if err != nil {
			return fmt.Errorf("%s", model.UserMessage(err))
		}
		printSummary(out, state)
		return nil
	},
}

func init() {
	newCmd.Flags().IntVarP(&newCount, "count", "n", 0, "number of cards (clamped to the configured range, 0 uses the default)")
	newCmd.Flags().StringVarP(&newLevel, "level", "l", string(model.DefaultLevel), "difficulty: beginner, intermediate or advanced")
	rootCmd.AddCommand(newCmd)
}

// printSummary はデッキの概要 (トピック・枚数・箱ごとの枚数) を表示する
func printSummary(out io.Writer, state *model.DeckState) {
	if len(state.Cards) == 0 {
		fmt.Fprintln(out, "📭 No cards. Run `study new <topic>` to generate a deck.")
		return
	}
	fmt.Fprintf(out, "📚 %s (%s): %d cards\n", state.LastTopic, state.Level, len(state.Cards))
	for i, n := range state.BoxCounts {
		fmt.Fprintf(out, "   Box %d: %d\n", i+1, n)
	}
}
