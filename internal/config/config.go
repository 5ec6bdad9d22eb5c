// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Logs struct {
		Dir   string `mapstructure:"dir" yaml:"dir"`
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"logs" yaml:"logs"`
	Output struct {
		HeaderFill   string  `mapstructure:"header_fill" yaml:"header_fill"`
		WidthPadding float64 `mapstructure:"width_padding" yaml:"width_padding"`
		MaxColWidth  float64 `mapstructure:"max_col_width" yaml:"max_col_width"`
	} `mapstructure:"output" yaml:"output"`
	Split struct {
		SheetIndex int `mapstructure:"sheet_index" yaml:"sheet_index"`
	} `mapstructure:"split" yaml:"split"`
}

// Load reads the configuration from ./excel-tool.yaml or
// ~/.excel-tool/config.yaml plus EXCEL_TOOL_* environment variables.
// A missing config file is not an error — defaults apply. A malformed or
// unreadable file returns the defaults alongside the error so the caller
// can log it, mark the run failed, and still proceed.
func Load() (*Config, error) {
	viper.SetConfigName("excel-tool")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(configDir())

	viper.SetDefault("logs.dir", "logs")
	viper.SetDefault("logs.level", "info")
	viper.SetDefault("output.header_fill", "FFFF00")
	viper.SetDefault("output.width_padding", 2)
	viper.SetDefault("output.max_col_width", 0)
	viper.SetDefault("split.sheet_index", 0)

	viper.SetEnvPrefix("EXCEL_TOOL")
	viper.AutomaticEnv()

	readErr := viper.ReadInConfig()
	if _, notFound := readErr.(viper.ConfigFileNotFoundError); notFound {
		readErr = nil
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return defaults(), err
	}
	if readErr != nil {
		return defaults(), readErr
	}
	return &cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Logs.Dir = "logs"
	cfg.Logs.Level = "info"
	cfg.Output.HeaderFill = "FFFF00"
	cfg.Output.WidthPadding = 2
	return cfg
}

// Path returns the config file viper resolved, or the default location
// when no file was found.
func Path() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(configDir(), "config.yaml")
}

// Dump renders the effective configuration as YAML.
func (c *Config) Dump() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".excel-tool"
	}
	return filepath.Join(home, ".excel-tool")
}
