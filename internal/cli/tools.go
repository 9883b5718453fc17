package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolbus/toolbus/internal/config"
	"github.com/toolbus/toolbus/internal/daemon"
	"github.com/toolbus/toolbus/pkg/modelconv"
)

var toolsFormat string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the registered tool declarations",
	Long: `Print the declaration records for all registered tools as JSON.
The --format flag renders them in a model provider's tool parameter shape
instead of the native record shape.`,
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().StringVar(&toolsFormat, "format", "records", "output format (records, openai, anthropic)")
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	// Listing declarations should not touch the history database
	cfg.History.Enabled = false

	log, err := newLogger(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()

	d, err := daemon.New(cfg, log)
	if err != nil {
		return err
	}

	records := d.Registry().Declarations()

	var payload interface{}
	switch toolsFormat {
	case "records":
		payload = map[string]interface{}{
			"tools":   records,
			"aliases": d.Dispatcher().Aliases(),
		}
	case "openai":
		payload, err = modelconv.OpenAITools(records)
		if err != nil {
			return fmt.Errorf("failed to convert declarations: %w", err)
		}
	case "anthropic":
		payload, err = modelconv.AnthropicTools(records)
		if err != nil {
			return fmt.Errorf("failed to convert declarations: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", toolsFormat)
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode declarations: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}
