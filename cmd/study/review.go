package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ai_flashcards/internal/model"
	"ai_flashcards/internal/service"

	"github.com/spf13/cobra"
)

var reviewLimit int

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review cards interactively, weaker boxes first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		return runReview(s.ctx, s.store, cmd.InOrStdin(), cmd.OutOrStdout(), reviewLimit)
	},
}

func init() {
	reviewCmd.Flags().IntVarP(&reviewLimit, "limit", "n", 0, "stop after this many answers (0 = until quit)")
	rootCmd.AddCommand(reviewCmd)
}

// runReview は表示中のカードを出題し、y/n/r/q の入力でデッキを進める。
// 入力が尽きたら (EOF) 終了する。
func runReview(ctx context.Context, store service.DeckService, in io.Reader, out io.Writer, limit int) error {
	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	reviewed := 0
	defer func() {
		fmt.Fprintf(out, "\n🏁 Reviewed %d cards\n", reviewed)
	}()

cards:
	for limit <= 0 || reviewed < limit {
		state := store.State()
		card := state.CurrentCard
		if card == nil {
			fmt.Fprintln(out, "📭 No cards. Run `study new <topic>` to generate a deck.")
			return nil
		}

		fmt.Fprintf(out, "\nCard %d/%d · Box %d · %s\n", state.Current+1, len(state.Cards), card.Box, card.Tag)
		fmt.Fprintf(out, "Q: %s\n", card.Q)
		if card.Hint != "" {
			fmt.Fprintf(out, "💡 Hint: %s\n", card.Hint)
		}
		fmt.Fprint(out, "(Enter to flip) ")
		if _, ok := readLine(); !ok {
			return nil
		}
		fmt.Fprintf(out, "A: %s\n", card.A)

		for {
			fmt.Fprint(out, "Got it? [y]es / [n]o / [r]egenerate / [q]uit: ")
			answer, ok := readLine()
			if !ok {
				return nil
			}
			answer = strings.ToLower(answer)
			switch answer {
			case "y", "yes", "n", "no":
				correct := answer[0] == 'y'
				next, err := store.MarkCurrent(ctx, correct)
				if err != nil {
					return fmt.Errorf("%s", model.UserMessage(err))
				}
				reviewed++
				printMarked(out, next, card.ID, correct)
				continue cards
			case "r":
				fmt.Fprintln(out, "🔄 Regenerating this card...")
				if _, err := store.RegenerateCurrent(ctx); err != nil {
					if service.IsSuperseded(err) {
						fmt.Fprintln(out, "⚠️ The deck changed while regenerating; the result was discarded.")
					} else {
						fmt.Fprintf(out, "⚠️ %s\n", model.UserMessage(err))
					}
				}
				continue cards
			case "q", "quit":
				return nil
			default:
				fmt.Fprintln(out, "Please answer y, n, r or q.")
			}
		}
	}
	return nil
}

// printMarked は採点したカードの移動先の箱を表示する
func printMarked(out io.Writer, state *model.DeckState, cardID int, correct bool) {
	mark := "❌"
	if correct {
		mark = "✅"
	}
	for _, c := range state.Cards {
		if c.ID == cardID {
			fmt.Fprintf(out, "%s Moved to Box %d\n", mark, c.Box)
			return
		}
	}
	fmt.Fprintln(out, mark)
}
