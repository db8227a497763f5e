package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/msalah0e/pathseek/internal/engine"
	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the graph (json, yaml or dot)",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			if format == "" {
				format = formatFromPath(output)
			}
			data, err := s.Export(format)
			if err != nil {
				s.fail("%v", err)
			}

			if output == "" || output == "-" {
				cmd.OutOrStdout().Write(data)
				return
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				s.fail("Failed to write %s: %v", output, err)
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Exported %d step(s) to %s\n", ui.StatusIcon(true), s.Graph().Len(), output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, yaml or dot (default from file extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func importCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the graph with an exported file",
		Long: `Replace the whole graph with a JSON or YAML export. Invalid files are
rejected and leave the graph unchanged. The import can be undone.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := readInput(cmd, args[0])
			if err != nil {
				ui.Bad.Printf("  Failed to read %s: %v\n", args[0], err)
				os.Exit(1)
			}
			if format == "" {
				format = formatFromPath(args[0])
			}

			s := mustSession(cmd)
			defer s.Close()

			if err := s.Import(data, format); err != nil {
				s.fail("%s: %v", s.Status().Text, err)
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Imported %d step(s), %d connection(s)\n",
				ui.StatusIcon(true), s.Graph().Len(), len(s.Graph().Edges()))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: json or yaml (default from file extension)")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return engine.FormatYAML
	case ".dot", ".gv":
		return engine.FormatDOT
	default:
		return engine.FormatJSON
	}
}
