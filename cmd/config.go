package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/cfbstats/internal/config"
	"github.com/KaramelBytes/cfbstats/internal/pipeline"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set cfbstats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_path: %s\n", cfg.DataPath)
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.DecimalSeparator != "" {
			fmt.Fprintf(out, "decimal_separator: %q\n", cfg.DecimalSeparator)
		}
		if cfg.ThousandsSeparator != "" {
			fmt.Fprintf(out, "thousands_separator: %q\n", cfg.ThousandsSeparator)
		}
		fmt.Fprintf(out, "addr: %s\n", cfg.Addr)
		fmt.Fprintf(out, "read_timeout_sec: %d\n", cfg.ReadTimeoutSec)
		fmt.Fprintf(out, "write_timeout_sec: %d\n", cfg.WriteTimeoutSec)
		fmt.Fprintf(out, "shutdown_timeout_sec: %d\n", cfg.ShutdownTimeoutSec)
		fmt.Fprintf(out, "plot_width: %d\n", cfg.PlotWidth)
		fmt.Fprintf(out, "plot_height: %d\n", cfg.PlotHeight)
		fmt.Fprintf(out, "r_decimals: %d\n", cfg.RDecimals)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		fmt.Fprintf(out, "columns.ppg: %s\n", cfg.Columns.PPG)
		fmt.Fprintf(out, "columns.pass_touchdowns: %s\n", cfg.Columns.PassTouchdowns)
		fmt.Fprintf(out, "columns.rush_touchdowns: %s\n", cfg.Columns.RushTouchdowns)
		fmt.Fprintf(out, "columns.total_yards: %s\n", cfg.Columns.TotalYards)
		fmt.Fprintf(out, "columns.turnovers: %s\n", cfg.Columns.Turnovers)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Start from the file so --data, --debug and env overrides stay transient.
		next, err := cfgpkg.LoadStored(cfgFile)
		if err != nil {
			return err
		}
		if err := setKey(next, key, val); err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if _, err := pipeline.Options(next); err != nil {
			return err
		}
		if err := cfgpkg.Save(next, cfgFile); err != nil {
			return err
		}
		if cfg != nil {
			_ = setKey(cfg, key, val)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	var err error
	switch key {
	case "data_path":
		c.DataPath = val
	case "sheet":
		c.Sheet = val
	case "delimiter":
		c.Delimiter = val
	case "decimal_separator":
		c.DecimalSeparator = val
	case "thousands_separator":
		c.ThousandsSeparator = val
	case "addr":
		c.Addr = val
	case "read_timeout_sec":
		c.ReadTimeoutSec, err = atoi()
	case "write_timeout_sec":
		c.WriteTimeoutSec, err = atoi()
	case "shutdown_timeout_sec":
		c.ShutdownTimeoutSec, err = atoi()
	case "plot_width":
		c.PlotWidth, err = atoi()
	case "plot_height":
		c.PlotHeight, err = atoi()
	case "r_decimals":
		c.RDecimals, err = atoi()
	case "log_level":
		switch v := strings.ToLower(val); v {
		case "debug", "info", "warn", "error":
			c.LogLevel = v
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_format":
		c.LogFormat = strings.ToLower(val)
	case "columns.ppg":
		c.Columns.PPG = val
	case "columns.pass_touchdowns":
		c.Columns.PassTouchdowns = val
	case "columns.rush_touchdowns":
		c.Columns.RushTouchdowns = val
	case "columns.total_yards":
		c.Columns.TotalYards = val
	case "columns.turnovers":
		c.Columns.Turnovers = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
