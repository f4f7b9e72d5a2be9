package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pnpm-extra/pnpm-extra/pkg/buildinfo"
)

// Execute runs the pnpm-extra CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (tree, catalog,
// graph, completion), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: warn level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "pnpm-extra",
		Short:        "Extra tooling for pnpm workspaces",
		Long:         `pnpm-extra adds workspace tooling that pnpm itself lacks: an inverse dependency tree showing which packages depend on each workspace member, and a catalog editor that adds pinned versions to pnpm-workspace.yaml.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.WarnLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newTreeCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
