package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretesun/hey-there/internal/appState"
	"github.com/aretesun/hey-there/internal/config"
	configCmd "github.com/aretesun/hey-there/internal/ui/cli/config"
	"github.com/aretesun/hey-there/internal/ui/cli/plan"
	"github.com/aretesun/hey-there/internal/ui/cli/serve"
	"github.com/spf13/cobra"
)

var (
	logLevel    string
	logFile     string
	modelName   string
	dbPath      string
	temperature float64
	maxTokens   int
)

var rootCmd = &cobra.Command{
	Use:   "hey-there",
	Short: "Streaming travel plans from your terminal",
	Long: `hey-there asks a language model for a day by day travel plan and shows it
while it is still being written. Plans are archived locally and can be edited
in follow-up requests.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&logFile, "log-file", "", "Log file path (defaults to stderr)")
	flags.StringVarP(&modelName, "model", "m", "", "Model preset to use")
	flags.StringVar(&dbPath, "db", "", "Trip archive path")
	flags.Float64Var(&temperature, "temperature", 0, "Override the preset temperature")
	flags.IntVar(&maxTokens, "max-tokens", 0, "Override the preset token limit")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		overrides := &config.RuntimeOverrides{}
		if logLevel != "" {
			overrides.LogLevel = &logLevel
		}
		if logFile != "" {
			overrides.LogFile = &logFile
		}
		if modelName != "" {
			overrides.ActiveModel = &modelName
		}
		if dbPath != "" {
			overrides.DBPath = &dbPath
		}
		if cmd.Flags().Changed("temperature") {
			overrides.Temperature = &temperature
		}
		if cmd.Flags().Changed("max-tokens") {
			overrides.MaxTokens = &maxTokens
		}
		// Subcommand flags that map onto configuration.
		if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
			d, err := time.ParseDuration(f.Value.String())
			if err != nil {
				return fmt.Errorf("invalid --timeout: %w", err)
			}
			overrides.Timeout = &d
		}
		if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
			addr := f.Value.String()
			overrides.Addr = &addr
		}
		return appState.Initialize(overrides)
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return appState.Cleanup()
	}

	// Remove "completions" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		configCmd.ConfigCmd,
		plan.PlanCmd,
		serve.ServeCmd,
	)
}
