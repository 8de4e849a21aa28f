package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/cfbstats/internal/config"
	"github.com/KaramelBytes/cfbstats/internal/logging"
	"github.com/KaramelBytes/cfbstats/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile  string
	dataPath string
	debug    bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "cfbstats",
	Short: "College football team statistics: fits, plots and summaries",
	Long: `cfbstats loads a college-football team statistics table (CSV, TSV or XLSX), fits points per game
against passing touchdowns, rushing touchdowns, total yards and turnover margin, renders the scatter plots
and serves everything over a small HTTP API.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.cfbstats/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset path (overrides data_path and DATA_PATH)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config report the error themselves
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	f := rootCmd.PersistentFlags()
	if f.Changed("data") && dataPath != "" {
		c.DataPath = dataPath
	}
	if debug {
		c.LogLevel = "debug"
	}
	cfg = c
}

// requireConfig returns the loaded configuration or the error that prevented loading it.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

// newPipeline builds the logger and the pipeline for the loaded configuration.
func newPipeline() (*pipeline.Pipeline, *zap.Logger, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	p, err := pipeline.New(c, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return p, log, nil
}
