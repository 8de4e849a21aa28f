package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the supported metric pairs and their columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, log, err := newPipeline()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		for _, p := range pipe.Pairs() {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s vs %s (/api/%s)\n", p.Selector, p.Y, p.X, p.Route)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pairsCmd)
}
