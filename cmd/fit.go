package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	fitOutputPath string
	fitJSON       bool
)

var fitCmd = &cobra.Command{
	Use:   "fit <selector>",
	Short: "Fit points per game against one metric",
	Long: `Fit points per game against one metric and print slope, intercept and Pearson r.
Selectors: pass-touchdowns, rush-touchdowns, total-yards, turnovers (legacy route names also work).
With --output the scatter plot is written as PNG.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, log, err := newPipeline()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		out := cmd.OutOrStdout()

		if fitOutputPath != "" {
			img, res, err := pipe.Plot(args[0])
			if err != nil {
				return err
			}
			if err := writeOutput(fitOutputPath, img); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote plot for %s to %s (%s)\n", res.Pair.Selector, fitOutputPath, res.Fit.RLabel(cfg.RDecimals))
			return nil
		}

		res, err := pipe.Fit(args[0])
		if err != nil {
			return err
		}
		if fitJSON {
			b, err := encodeJSON(res)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		fmt.Fprintf(out, "%s: %s ~ %s\n", res.Pair.Selector, res.Pair.Y, res.Pair.X)
		fmt.Fprintf(out, "  slope:     %.6g\n", res.Fit.Slope)
		fmt.Fprintf(out, "  intercept: %.6g\n", res.Fit.Intercept)
		fmt.Fprintf(out, "  %s\n", res.Fit.RLabel(cfg.RDecimals))
		fmt.Fprintf(out, "  n: %d (dropped %d of %d rows)\n", res.Fit.N, res.Dropped, res.Source)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
	fitCmd.Flags().StringVarP(&fitOutputPath, "output", "o", "", "write the scatter plot PNG to this path")
	fitCmd.Flags().BoolVar(&fitJSON, "json", false, "print the fit as JSON")
}
