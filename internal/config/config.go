// Package config loads csvdesk settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/csvdesk/internal/logging"
	"github.com/ukaji3/csvdesk/pkg/csvdesk"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/chart"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/render"
)

// ErrInvalid wraps every problem Validate finds.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all csvdesk configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	CSV     CSVConfig     `yaml:"csv"`
	Columns ColumnsConfig `yaml:"columns"`
	Render  RenderConfig  `yaml:"render"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, logfmt, json
}

// CSVConfig configures how datasets are read and written.
type CSVConfig struct {
	Delimiter        string `yaml:"delimiter"`
	LazyQuotes       bool   `yaml:"lazy_quotes"`
	TrimLeadingSpace bool   `yaml:"trim_leading_space"`
	Sheet            string `yaml:"sheet"`
}

// ColumnsConfig names the gradebook columns the charts read.
type ColumnsConfig struct {
	Student string `yaml:"student"`
	Course  string `yaml:"course"`
	Final   string `yaml:"final"`
	Grade   string `yaml:"grade"`
}

// RenderConfig configures chart output.
type RenderConfig struct {
	Format   string `yaml:"format"` // png, xlsx, terminal
	Dir      string `yaml:"dir"`
	Workbook string `yaml:"workbook"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cols := chart.DefaultOptions()
	ro := render.DefaultOptions()
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatText,
		},
		CSV: CSVConfig{
			Delimiter: ",",
		},
		Columns: ColumnsConfig{
			Student: cols.Student,
			Course:  cols.Course,
			Final:   cols.Final,
			Grade:   cols.Grade,
		},
		Render: RenderConfig{
			Format:   string(render.FormatPNG),
			Dir:      ro.Dir,
			Workbook: ro.Workbook,
			Width:    ro.Width,
			Height:   ro.Height,
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var merr error

	if _, err := logging.GetLevel(c.Log.Level); err != nil {
		merr = multierror.Append(merr, err)
	}
	if _, err := logging.GetFormatter(c.Log.Format); err != nil {
		merr = multierror.Append(merr, err)
	}

	if _, err := c.delimiter(); err != nil {
		merr = multierror.Append(merr, err)
	}

	for key, name := range map[string]string{
		"student": c.Columns.Student,
		"course":  c.Columns.Course,
		"final":   c.Columns.Final,
		"grade":   c.Columns.Grade,
	} {
		if name == "" {
			merr = multierror.Append(merr, fmt.Errorf("columns.%s must not be empty", key))
		}
	}

	if _, err := render.ParseFormat(c.Render.Format); err != nil {
		merr = multierror.Append(merr, err)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}

	if merr != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, merr)
	}
	return nil
}

func (c *Config) delimiter() (rune, error) {
	if c.CSV.Delimiter == "" {
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if size != len(c.CSV.Delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	switch r {
	case '\r', '\n', '"':
		return 0, fmt.Errorf("csv.delimiter %q is not allowed", c.CSV.Delimiter)
	}
	return r, nil
}

// StoreOptions returns the dataset read/write options.
func (c *Config) StoreOptions() csvdesk.Options {
	opts := csvdesk.DefaultOptions()
	if r, err := c.delimiter(); err == nil {
		opts.Delimiter = r
	}
	opts.LazyQuotes = c.CSV.LazyQuotes
	opts.TrimLeadingSpace = c.CSV.TrimLeadingSpace
	opts.Sheet = c.CSV.Sheet
	return opts
}

// ChartOptions returns the chart column names.
func (c *Config) ChartOptions() chart.Options {
	return chart.Options{
		Student: c.Columns.Student,
		Course:  c.Columns.Course,
		Final:   c.Columns.Final,
		Grade:   c.Columns.Grade,
	}
}

// RenderOptions returns the sink options. Out and Logger are left for the
// caller to set.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Dir:      c.Render.Dir,
		Workbook: c.Render.Workbook,
		Width:    c.Render.Width,
		Height:   c.Render.Height,
	}
}
