package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Columns maps each dataset role to the header name used in the source file.
type Columns struct {
	PPG            string `mapstructure:"ppg" yaml:"ppg"`
	PassTouchdowns string `mapstructure:"pass_touchdowns" yaml:"pass_touchdowns"`
	RushTouchdowns string `mapstructure:"rush_touchdowns" yaml:"rush_touchdowns"`
	TotalYards     string `mapstructure:"total_yards" yaml:"total_yards"`
	Turnovers      string `mapstructure:"turnovers" yaml:"turnovers"`
}

// Global configuration structure.
type Global struct {
	DataPath           string `mapstructure:"data_path" yaml:"data_path"`
	Sheet              string `mapstructure:"sheet" yaml:"sheet"`
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`

	// HTTP server
	Addr               string `mapstructure:"addr" yaml:"addr"`
	ReadTimeoutSec     int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec    int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`

	// Figures
	PlotWidth  int `mapstructure:"plot_width" yaml:"plot_width"`
	PlotHeight int `mapstructure:"plot_height" yaml:"plot_height"`
	RDecimals  int `mapstructure:"r_decimals" yaml:"r_decimals"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	Columns Columns `mapstructure:"columns" yaml:"columns"`
}

// DefaultColumns returns the header names of the cfb23 dataset.
func DefaultColumns() Columns {
	return Columns{
		PPG:            "Points Per Game",
		PassTouchdowns: "Pass Touchdowns",
		RushTouchdowns: "Rushing TD",
		TotalYards:     "Off Yards",
		Turnovers:      "Turnover Margin",
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.cfbstats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	return load(cfgFile, true)
}

// LoadStored loads only what is persisted: the config file over defaults.
// Environment overrides are ignored so callers can rewrite the file without
// baking them in.
func LoadStored(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, withEnv bool) (*Global, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("CFBSTATS")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		// DATA_PATH is what the container images have always exported.
		if err := v.BindEnv("data_path", "CFBSTATS_DATA_PATH", "DATA_PATH"); err != nil {
			return nil, fmt.Errorf("bind env: %w", err)
		}
	}

	cols := DefaultColumns()
	v.SetDefault("data_path", "cfb23.csv")
	v.SetDefault("sheet", "")
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("addr", "0.0.0.0:5000")
	v.SetDefault("read_timeout_sec", 15)
	v.SetDefault("write_timeout_sec", 30)
	v.SetDefault("shutdown_timeout_sec", 10)
	v.SetDefault("plot_width", 800)
	v.SetDefault("plot_height", 600)
	v.SetDefault("r_decimals", 2)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("columns.ppg", cols.PPG)
	v.SetDefault("columns.pass_touchdowns", cols.PassTouchdowns)
	v.SetDefault("columns.rush_touchdowns", cols.RushTouchdowns)
	v.SetDefault("columns.total_yards", cols.TotalYards)
	v.SetDefault("columns.turnovers", cols.Turnovers)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the server cannot run with.
func (c *Global) Validate() error {
	if strings.TrimSpace(c.DataPath) == "" {
		return fmt.Errorf("data_path must not be empty")
	}
	if c.PlotWidth <= 0 || c.PlotHeight <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", c.PlotWidth, c.PlotHeight)
	}
	if c.RDecimals < 0 || c.RDecimals > 6 {
		return fmt.Errorf("r_decimals must be within 0..6, got %d", c.RDecimals)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log_format: %s (use json or console)", c.LogFormat)
	}
	return nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".cfbstats"), nil
}
