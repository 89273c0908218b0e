package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
)

var (
	ErrInvalidPort    = errors.New("invalid port")
	ErrInvalidLevel   = errors.New("invalid logging level")
	ErrInvalidFormat  = errors.New("invalid logging format")
	ErrInvalidHorizon = errors.New("invalid horizon")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Forecast ForecastConfig `mapstructure:"forecast"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	HTTPPort  int    `mapstructure:"http_port"`
	BodyLimit int    `mapstructure:"body_limit"`
}

// Addr returns the host:port the server listens on
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// ForecastConfig holds the defaults applied to forecast requests that leave a field unset
type ForecastConfig struct {
	SeasonalPeriod  int           `mapstructure:"seasonal_period"`
	Initialization  string        `mapstructure:"initialization"`
	Horizon         int           `mapstructure:"horizon"`
	CSVPeriods      int           `mapstructure:"csv_periods"`
	MaxHorizon      int           `mapstructure:"max_horizon"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Parallelization int           `mapstructure:"parallelization"`
	Polish          bool          `mapstructure:"polish"`
	BusinessDays    bool          `mapstructure:"business_days"`
}

// SeriesOptions converts the forecast defaults into fit options for the given seasonal
// period. A zero period falls back to the configured one.
func (c ForecastConfig) SeriesOptions(period int) *options.Options {
	if period == 0 {
		period = c.SeasonalPeriod
	}
	opt := options.NewDefaultOptions()
	opt.SeasonalPeriod = period
	opt.Initialization = c.Initialization
	opt.SearchOptions.Parallelization = c.Parallelization
	opt.SearchOptions.Polish = c.Polish
	return opt
}

// Validate validates all configuration sections
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast config: %w", err)
	}
	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("http_port %d, %w", c.HTTPPort, ErrInvalidPort)
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("%q, %w", c.Level, ErrInvalidLevel)
	}

	switch strings.ToLower(c.Format) {
	case "json", "console", "pretty":
	default:
		return fmt.Errorf("%q, %w", c.Format, ErrInvalidFormat)
	}
	return nil
}

// Validate validates forecast configuration
func (c *ForecastConfig) Validate() error {
	if c.SeasonalPeriod < 2 {
		return fmt.Errorf("seasonal_period %d, %w", c.SeasonalPeriod, options.ErrInvalidSeasonalPeriod)
	}
	if c.Horizon < 1 {
		return fmt.Errorf("horizon %d, %w", c.Horizon, ErrInvalidHorizon)
	}
	if c.CSVPeriods < 1 {
		return fmt.Errorf("csv_periods %d, %w", c.CSVPeriods, ErrInvalidHorizon)
	}
	if c.MaxHorizon < max(c.Horizon, c.CSVPeriods) {
		return fmt.Errorf(
			"max_horizon %d is less than horizon %d or csv_periods %d, %w",
			c.MaxHorizon, c.Horizon, c.CSVPeriods, ErrInvalidHorizon,
		)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout %s, %w", c.Timeout, ErrInvalidTimeout)
	}
	if c.Parallelization < 0 {
		return fmt.Errorf("parallelization %d, %w", c.Parallelization, options.ErrNegativeParallel)
	}
	if _, err := c.SeriesOptions(0).Validate(); err != nil {
		return fmt.Errorf("initialization %q, %w", c.Initialization, err)
	}
	return nil
}
