package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/msalah0e/pathseek/internal/activity"
	"github.com/msalah0e/pathseek/internal/config"
	"github.com/msalah0e/pathseek/internal/ctxlog"
	"github.com/msalah0e/pathseek/internal/engine"
	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/store"
	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	cfg         *config.Config
	configPath  string
	backendFlag string
	logLevel    string
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "pathseek",
	Short: "Map the steps between where you are and where you want to be",
	Long: ui.Brand.Sprint("pathseek") + ": a step graph you can edit, search and undo\n" +
		ui.Subtle.Sprint("Add steps, connect them, and find the shortest route through them"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c
		if backendFlag != "" {
			cfg.Storage.Backend = backendFlag
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		ui.SetColor(cfg.UI.Color && !noColor && os.Getenv("NO_COLOR") == "")

		logger := ctxlog.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(ctxlog.WithLogger(ctx, logger))
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("pathseek {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/pathseek/config.toml)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "store", "", "Storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		nodeCmd(),
		edgeCmd(),
		pathCmd(),
		undoCmd(),
		redoCmd(),
		historyCmd(),
		exportCmd(),
		importCmd(),
		renderCmd(),
		serveCmd(),
		configCmd(),
		logCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.Bad.Fprintf(os.Stderr, "  %v\n", err)
	}
	return err
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.LoadFile(config.Path())
}

// session is an initialized engine bound to the configured store.
type session struct {
	*engine.Engine
	store store.Store
}

func (s *session) Close() {
	s.Dispose()
	s.store.Close()
}

// openSession loads the graph and its history from the configured store.
func openSession(cmd *cobra.Command) (*session, error) {
	st, err := store.Open(cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	opts := engine.OptionsFromConfig(cfg)
	opts.Store = st
	opts.Journal = activity.New(activity.DefaultPath())

	eng := engine.New(opts)
	if err := eng.Init(cmd.Context()); err != nil {
		st.Close()
		return nil, err
	}
	return &session{Engine: eng, store: st}, nil
}

// mustSession is openSession for Run handlers: failures end the process.
func mustSession(cmd *cobra.Command) *session {
	s, err := openSession(cmd)
	if err != nil {
		ui.Bad.Printf("  Failed to load graph: %v\n", err)
		os.Exit(1)
	}
	return s
}

func parseID(arg string) (graph.NodeID, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid step id %q", arg)
	}
	return graph.NodeID(n), nil
}

func mustID(arg string) graph.NodeID {
	id, err := parseID(arg)
	if err != nil {
		ui.Bad.Printf("  %v\n", err)
		os.Exit(1)
	}
	return id
}

func mustFloat(arg, name string) float64 {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		ui.Bad.Printf("  invalid %s %q\n", name, arg)
		os.Exit(1)
	}
	return v
}

// label formats a step as "#id text".
func label(n graph.Node) string {
	return fmt.Sprintf("%s %s", ui.Subtle.Sprintf("#%d", n.ID), n.Text)
}

// stepNames returns the text of each step in path.
func stepNames(g *graph.Graph, path []graph.NodeID) []string {
	names := make([]string, 0, len(path))
	for _, id := range path {
		if n, ok := g.Node(id); ok {
			names = append(names, n.Text)
		} else {
			names = append(names, fmt.Sprintf("Unknown (%d)", id))
		}
	}
	return names
}

// fail closes the session, prints the error and exits.
func (s *session) fail(format string, a ...interface{}) {
	s.Close()
	ui.Bad.Printf("  "+format+"\n", a...)
	os.Exit(1)
}
