package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	testData := map[string]struct {
		mutate func(c *Config)
		err    error
	}{
		"default": {
			mutate: func(c *Config) {},
		},
		"zero port": {
			mutate: func(c *Config) { c.Server.HTTPPort = 0 },
			err:    ErrInvalidPort,
		},
		"port too large": {
			mutate: func(c *Config) { c.Server.HTTPPort = 70000 },
			err:    ErrInvalidPort,
		},
		"bad level": {
			mutate: func(c *Config) { c.Logging.Level = "loud" },
			err:    ErrInvalidLevel,
		},
		"upper case level": {
			mutate: func(c *Config) { c.Logging.Level = "DEBUG" },
		},
		"bad format": {
			mutate: func(c *Config) { c.Logging.Format = "xml" },
			err:    ErrInvalidFormat,
		},
		"seasonal period one": {
			mutate: func(c *Config) { c.Forecast.SeasonalPeriod = 1 },
			err:    options.ErrInvalidSeasonalPeriod,
		},
		"zero horizon": {
			mutate: func(c *Config) { c.Forecast.Horizon = 0 },
			err:    ErrInvalidHorizon,
		},
		"max horizon below horizon": {
			mutate: func(c *Config) { c.Forecast.MaxHorizon = c.Forecast.Horizon - 1 },
			err:    ErrInvalidHorizon,
		},
		"zero csv periods": {
			mutate: func(c *Config) { c.Forecast.CSVPeriods = 0 },
			err:    ErrInvalidHorizon,
		},
		"max horizon below csv periods": {
			mutate: func(c *Config) {
				c.Forecast.Horizon = 5
				c.Forecast.MaxHorizon = 8
			},
			err: ErrInvalidHorizon,
		},
		"detrended initialization": {
			mutate: func(c *Config) { c.Forecast.Initialization = options.InitDetrended },
		},
		"unknown initialization": {
			mutate: func(c *Config) { c.Forecast.Initialization = "naive" },
			err:    options.ErrUnsupportedInit,
		},
		"zero timeout": {
			mutate: func(c *Config) { c.Forecast.Timeout = 0 },
			err:    ErrInvalidTimeout,
		},
		"negative parallelization": {
			mutate: func(c *Config) { c.Forecast.Parallelization = -1 },
			err:    options.ErrNegativeParallel,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			td.mutate(cfg)
			err := cfg.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing default file uses defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hwforecast.yaml")
		contents := `
server:
  http_port: 8080
logging:
  level: debug
  format: console
forecast:
  seasonal_period: 7
  horizon: 14
  csv_periods: 12
  initialization: detrended
  timeout: 2s
  polish: true
`
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.HTTPPort)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "console", cfg.Logging.Format)
		assert.Equal(t, 7, cfg.Forecast.SeasonalPeriod)
		assert.Equal(t, 14, cfg.Forecast.Horizon)
		assert.Equal(t, 12, cfg.Forecast.CSVPeriods)
		assert.Equal(t, options.InitDetrended, cfg.Forecast.Initialization)
		assert.Equal(t, 2*time.Second, cfg.Forecast.Timeout)
		assert.True(t, cfg.Forecast.Polish)
		assert.Equal(t, DefaultConfig().Forecast.MaxHorizon, cfg.Forecast.MaxHorizon)
	})

	t.Run("environment override", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HWFORECAST_FORECAST_SEASONAL_PERIOD", "4")
		t.Setenv("HWFORECAST_SERVER_HTTP_PORT", "9090")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Forecast.SeasonalPeriod)
		assert.Equal(t, 9090, cfg.Server.HTTPPort)
	})

	t.Run("invalid file contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hwforecast.yaml")
		require.NoError(t, os.WriteFile(path, []byte("forecast:\n  seasonal_period: 1\n"), 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, options.ErrInvalidSeasonalPeriod)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSeriesOptions(t *testing.T) {
	cfg := DefaultConfig().Forecast
	cfg.Parallelization = 4
	cfg.Polish = true
	cfg.Initialization = options.InitDetrended

	opt := cfg.SeriesOptions(0)
	assert.Equal(t, options.DefaultSeasonalPeriod, opt.SeasonalPeriod)
	assert.Equal(t, options.InitDetrended, opt.Initialization)
	assert.Equal(t, 4, opt.SearchOptions.Parallelization)
	assert.True(t, opt.SearchOptions.Polish)

	opt = cfg.SeriesOptions(7)
	assert.Equal(t, 7, opt.SeasonalPeriod)
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:5050", DefaultConfig().Server.Addr())
}
