package config

import (
	"fmt"

	"github.com/aretesun/hey-there/internal/appState"
	"github.com/spf13/cobra"
)

var (
	includeSources bool
	asYAML         bool

	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "View the merged configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appState.Get().Config

			if asYAML {
				out, err := cfg.DumpYAML()
				if err != nil {
					return fmt.Errorf("failed to render config: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			cfg.PrintConfig(cmd.OutOrStdout(), includeSources)
			return nil
		},
	}
)

func init() {
	ConfigCmd.Flags().BoolVarP(&includeSources, "include-sources", "s", false, "Show source file for each configuration value")
	ConfigCmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the configuration as YAML with secrets redacted")
}
