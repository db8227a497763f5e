package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/pathseek/internal/config"
	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the pathseek config file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", ui.Subtle.Sprint(configFile()))
			if err := toml.NewEncoder(out).Encode(cfg); err != nil {
				ui.Bad.Printf("  %v\n", err)
			}
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), configFile())
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the default config if none exists",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				if err := config.EnsureExists(); err != nil {
					ui.Bad.Printf("  Failed to write config: %v\n", err)
					return
				}
				ui.Good.Fprintf(cmd.OutOrStdout(), "  %s %s\n", ui.StatusIcon(true), config.Path())
			},
		},
	)
	return cmd
}

func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.Path()
}
