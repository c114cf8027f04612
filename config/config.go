// Package config resolves the CLI settings from defaults, an optional config
// file, SHEETHTML_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aerissecure/sheethtml/internal/logging"
	"github.com/aerissecure/sheethtml/markup"
	"github.com/aerissecure/sheethtml/xlsx"
)

// EnvPrefix is prepended to every environment variable. Dashes in keys
// become underscores, so "wrap-at" is read from SHEETHTML_WRAP_AT.
const EnvPrefix = "SHEETHTML"

// DefaultMaxFileBytes is the largest workbook accepted (50 MiB).
const DefaultMaxFileBytes int64 = 50 << 20

// Keys shared by flags, environment variables and config files.
const (
	KeyOutput         = "output"
	KeyBeautify       = "beautify"
	KeyDebug          = "debug"
	KeyBackend        = "backend"
	KeySheet          = "sheet"
	KeyWrapAt         = "wrap-at"
	KeyInclusiveSpans = "inclusive-spans"
	KeyLogLevel       = "log-level"
	KeyLogFormat      = "log-format"
	KeyWatch          = "watch"
	KeyMaxFileBytes   = "max-file-bytes"
)

// Config holds the resolved settings.
type Config struct {
	Output         string
	Beautify       bool
	Debug          bool
	Backend        xlsx.Backend
	Sheet          string
	WrapAt         int
	InclusiveSpans bool
	LogLevel       string
	LogFormat      string
	Watch          bool
	MaxFileBytes   int64
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyOutput, "o", "", "write the HTML to this file instead of stdout")
	fs.Bool(KeyBeautify, false, "indent and wrap the HTML output")
	fs.Bool(KeyDebug, false, "draw a border around every cell")
	fs.String(KeyBackend, string(xlsx.DefaultBackend), "spreadsheet decoder: unioffice or excelize")
	fs.String(KeySheet, "", "worksheet to convert (default: the first one)")
	fs.Int(KeyWrapAt, markup.DefaultWrapAt, "line width when beautifying")
	fs.Bool(KeyInclusiveSpans, false, "count both ends of a merge range for colspan and rowspan")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn or error")
	fs.String(KeyLogFormat, logging.FormatText, "log format: text, json or json-pretty")
	fs.Bool(KeyWatch, false, "re-render whenever the input file changes (requires --output)")
	fs.Int64(KeyMaxFileBytes, DefaultMaxFileBytes, "largest accepted workbook in bytes")
}

// Load resolves the configuration. path names an optional YAML, JSON or TOML
// file; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyBackend, string(xlsx.DefaultBackend))
	v.SetDefault(KeyWrapAt, markup.DefaultWrapAt)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatText)
	v.SetDefault(KeyMaxFileBytes, DefaultMaxFileBytes)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	backend, err := xlsx.ParseBackend(v.GetString(KeyBackend))
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Output:         v.GetString(KeyOutput),
		Beautify:       v.GetBool(KeyBeautify),
		Debug:          v.GetBool(KeyDebug),
		Backend:        backend,
		Sheet:          v.GetString(KeySheet),
		WrapAt:         v.GetInt(KeyWrapAt),
		InclusiveSpans: v.GetBool(KeyInclusiveSpans),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		Watch:          v.GetBool(KeyWatch),
		MaxFileBytes:   v.GetInt64(KeyMaxFileBytes),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	var errs []error
	if _, err := xlsx.ParseBackend(string(c.Backend)); err != nil {
		errs = append(errs, err)
	}
	if c.WrapAt <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyWrapAt, c.WrapAt))
	}
	if c.MaxFileBytes <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyMaxFileBytes, c.MaxFileBytes))
	}
	if _, err := logging.GetLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log format: %v", c.LogFormat))
	}
	if c.Watch && c.Output == "" {
		errs = append(errs, fmt.Errorf("%s requires %s", KeyWatch, KeyOutput))
	}
	return errors.Join(errs...)
}
