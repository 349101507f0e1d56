package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version, injected via ldflags
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the tackify CLI and returns an error if any command fails.
//
// Logging goes to stderr at info level, or debug level with --verbose.
// The logger is attached to the command context and accessible to all
// commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "tackify",
		Short:        "tackify makes presentations deliberately worse",
		Long:         `tackify ingests a PPTX deck and produces a copy whose fonts, fills, and text are degraded according to two 1-10 intensity dials. Same seed, same input, same output.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tackify %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newTransformCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
