package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolbus/toolbus/internal/config"
	"github.com/toolbus/toolbus/internal/daemon"
	"github.com/toolbus/toolbus/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the toolbus gateway daemon",
	Long: `Run the toolbus daemon in the foreground.
The daemon serves tool invocations over HTTP, streams invocation events to
WebSocket clients and runs any configured schedules until interrupted.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := newLogger(cfg, true)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()

	d, err := daemon.New(cfg, log)
	if err != nil {
		return err
	}

	return d.Run()
}

// newLogger builds the process logger from file config, letting the
// --log-level flag win over the configured level.
func newLogger(cfg *config.Config, withFile bool) (*logger.Logger, error) {
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}

	logCfg := logger.Config{
		Level:     level,
		Console:   true,
		Pretty:    true,
		Redaction: cfg.Logging.Redaction,
	}
	if withFile {
		logCfg.File = cfg.Logging.File
	}

	return logger.New(logCfg)
}
