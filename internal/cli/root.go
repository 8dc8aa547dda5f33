package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. This is
// typically called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the stickcut CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "stickcut",
		Short:        "StickCut plans guillotine cuts for dimensional lumber",
		Long:         `StickCut takes a lumber inventory and a part list and produces a cutting plan: which sticks to cut, in what order, with kerf, tolerance, and grain direction accounted for.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("stickcut %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newOptimizeCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newSampleCmd())

	return root.ExecuteContext(ctx)
}
