package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StickCut/internal/api"
)

// newServeCmd creates the serve command which starts the HTTP API.
func newServeCmd() *cobra.Command {
	var addr string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			srv := api.NewServer(
				api.WithLogger(loggerFromContext(ctx)),
				api.WithTimeout(timeout),
			)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request optimization time budget")

	return cmd
}
