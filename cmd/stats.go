package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	statsFormat     string
	statsOutputPath string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Describe the numeric columns of the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, log, err := newPipeline()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		summary, err := pipe.Stats()
		if err != nil {
			return err
		}
		var b []byte
		switch statsFormat {
		case "text", "":
			b = []byte(summary.Text())
		case "json":
			if b, err = encodeJSON(summary); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use text or json)", statsFormat)
		}

		if statsOutputPath != "" {
			if err := writeOutput(statsOutputPath, b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", statsOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsFormat, "format", "text", "output format: text | json")
	statsCmd.Flags().StringVarP(&statsOutputPath, "output", "o", "", "optional path to write the summary")
}
