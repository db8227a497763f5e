package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/msalah0e/pathseek/internal/ctxlog"
	"github.com/msalah0e/pathseek/internal/host"
	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string
	var fps int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Open the canvas editor in your browser",
		Long: `Serve the interactive canvas on a local address. Double-click to add a step,
right-click a step to start a connection, drag to move, shift-drag to select
several steps, scroll to zoom. Ctrl+Z and Ctrl+Y undo and redo.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if fps <= 0 {
				fps = cfg.Serve.FPS
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := mustSession(cmd)
			defer s.Close()

			ui.Banner(cmd.OutOrStdout(), "canvas")
			fmt.Fprintf(cmd.OutOrStdout(), "  Open %s\n", ui.Info.Sprintf("http://%s", addr))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n\n", ui.Subtle.Sprint("Press Ctrl+C to stop"))

			srv := host.New(host.Config{Addr: addr, FPS: fps}, s.Engine, ctxlog.FromContext(ctx))
			if err := srv.ListenAndServe(ctx); err != nil && ctx.Err() == nil {
				s.fail("%v", err)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from [serve] addr)")
	cmd.Flags().IntVar(&fps, "fps", 0, "Maximum frames pushed per second (default from [serve] fps)")
	return cmd
}
