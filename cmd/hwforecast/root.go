package main

import (
	"fmt"

	"github.com/aouyang1/go-hwforecaster/internal/config"
	"github.com/aouyang1/go-hwforecaster/internal/logging"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// app holds the state shared by every subcommand once the config is loaded
type app struct {
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "hwforecast",
		Short: "Additive Holt-Winters forecasting",
		Long: `hwforecast fits an additive level, trend and seasonal model to a series of
observations and projects it forward.

Forecast from the command line, serve forecasts over HTTP or generate
synthetic series to experiment with.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a yaml config file (default: ./config.yaml if present)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(fmt.Sprintf("hwforecast version %s\n", version))

	rootCmd.AddCommand(
		newForecastCmd(a),
		newServeCmd(a),
		newSimulateCmd(a),
	)
	return rootCmd
}

// load reads the config and builds the logger. Only serve logs to stdout since the other
// commands write their results there.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging
	if cmd.Name() != "serve" && (logCfg.OutputPath == "" || logCfg.OutputPath == "stdout") {
		logCfg.OutputPath = "stderr"
	}
	logger, err := logging.NewFromConfig(logCfg)
	if err != nil {
		return fmt.Errorf("unable to create logger, %w", err)
	}
	logging.SetGlobal(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}
