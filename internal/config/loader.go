package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override, e.g.
// HWFORECAST_FORECAST_SEASONAL_PERIOD
const EnvPrefix = "HWFORECAST"

// Load loads configuration from file. An empty path searches the default locations and
// falls back to defaults when no file is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/hwforecast")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config, %w", err)
	}

	return parseConfig(v)
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.http_port", def.Server.HTTPPort)
	v.SetDefault("server.body_limit", def.Server.BodyLimit)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output_path", def.Logging.OutputPath)
	v.SetDefault("logging.time_format", def.Logging.TimeFormat)

	v.SetDefault("forecast.seasonal_period", def.Forecast.SeasonalPeriod)
	v.SetDefault("forecast.initialization", def.Forecast.Initialization)
	v.SetDefault("forecast.horizon", def.Forecast.Horizon)
	v.SetDefault("forecast.csv_periods", def.Forecast.CSVPeriods)
	v.SetDefault("forecast.max_horizon", def.Forecast.MaxHorizon)
	v.SetDefault("forecast.timeout", def.Forecast.Timeout)
	v.SetDefault("forecast.parallelization", def.Forecast.Parallelization)
	v.SetDefault("forecast.polish", def.Forecast.Polish)
	v.SetDefault("forecast.business_days", def.Forecast.BusinessDays)
}

func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config, %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config, %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns the default configuration
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			HTTPPort:  5050,
			BodyLimit: 4 * 1024 * 1024,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			TimeFormat: "RFC3339",
		},
		Forecast: ForecastConfig{
			SeasonalPeriod:  options.DefaultSeasonalPeriod,
			Initialization:  options.InitCycleMean,
			Horizon:         30,
			CSVPeriods:      10,
			MaxHorizon:      3650,
			Timeout:         10 * time.Second,
			Parallelization: 1,
		},
	}
}
