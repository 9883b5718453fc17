package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/toolbus/toolbus/internal/config"
	"github.com/toolbus/toolbus/internal/daemon"
	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

var (
	callArgs    string
	callID      string
	callTimeout time.Duration
)

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a tool once and print the response envelope",
	Long: `Invoke a single tool through the dispatcher and print the function
response envelope as JSON. Arguments are passed as a JSON object.

Example:
  toolbus call calc --args '{"operation":"add","a":2,"b":2}'`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&callArgs, "args", "{}", "tool arguments as a JSON object")
	callCmd.Flags().StringVar(&callID, "id", "", "correlation id (defaults to a generated uuid)")
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 60*time.Second, "invocation timeout")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	var toolArgs map[string]interface{}
	if err := json.Unmarshal([]byte(callArgs), &toolArgs); err != nil {
		return fmt.Errorf("invalid --args: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := newLogger(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()

	d, err := daemon.New(cfg, log)
	if err != nil {
		return err
	}

	id := callID
	if id == "" {
		id = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), callTimeout)
	defer cancel()

	envelope := d.Dispatcher().Handle(ctx, tooldispatch.FunctionCall{
		Name: args[0],
		Args: toolArgs,
		ID:   id,
	})

	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}
