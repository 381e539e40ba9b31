package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the current deck (topic and level are kept)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		state := s.store.Reset(s.ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "🧹 Deck cleared (last topic: %q)\n", state.LastTopic)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
