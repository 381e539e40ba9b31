package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved deck and the card that will be asked next",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		out := cmd.OutOrStdout()
		state := s.store.State()
		printSummary(out, state)
		if card := state.CurrentCard; card != nil {
			fmt.Fprintf(out, "👉 Next: [%d/%d · Box %d · %s] %s\n",
				state.Current+1, len(state.Cards), card.Box, card.Tag, card.Q)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
