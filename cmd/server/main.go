package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mesaYaAdmin/internal/config"
	"mesaYaAdmin/internal/shared/logging"
)

// rootCmd starts the admin server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:           "mesaya-admin",
	Short:         "MesaYa reservation admin",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, reportCmd)
}

func main() {
	// Local runs read overrides from .env.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and installs the slog default logger.
func bootstrap(logToFile bool) (*config.Config, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config load: %w", err)
	}
	logCfg := logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
	}
	if logToFile {
		logCfg.Directory = cfg.Logging.Directory
	}
	_, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("logging setup: %w", err)
	}
	return cfg, closeLog, nil
}
