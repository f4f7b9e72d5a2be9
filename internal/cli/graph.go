package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pnpm-extra/pnpm-extra/pkg/config"
	"github.com/pnpm-extra/pnpm-extra/pkg/depgraph"
	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
	"github.com/pnpm-extra/pnpm-extra/pkg/render"
	"github.com/pnpm-extra/pnpm-extra/pkg/workspace"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	dir      string // workspace root
	output   string // output file path (stdout if empty)
	format   string // "dot" or "svg"
	external bool   // include packages outside the workspace
}

// newGraphCmd creates the graph command, which exports the workspace
// dependency graph as Graphviz DOT or rendered SVG.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{dir: ".", format: "dot"}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the workspace dependency graph",
		Long: `Export the workspace dependency graph as Graphviz DOT or SVG.

Workspace members are drawn as solid boxes; with --external, registry
dependencies appear as dashed grey boxes. Dev edges are dashed, peer and
optional edges dotted.

Examples:
  pnpm-extra graph                          # DOT to stdout
  pnpm-extra graph -o deps.svg --format svg
  pnpm-extra graph --external               # include registry packages`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(opts.dir)
			if err != nil {
				return err
			}

			ws, err := workspace.Load(opts.dir)
			if err != nil {
				return err
			}
			g, err := depgraph.Build(ws.Packages, depgraph.Options{
				IncludeDev:      cfg.Tree.Dev,
				IncludePeer:     cfg.Tree.Peer,
				IncludeOptional: cfg.Tree.Optional,
			})
			if err != nil {
				return err
			}

			dot := render.ToDOT(g, render.Options{External: opts.external})

			var out []byte
			switch strings.ToLower(opts.format) {
			case "dot":
				out = []byte(dot)
			case "svg":
				prog := newProgress(logger)
				out, err = render.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
				prog.done("Rendered SVG")
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want dot or svg)", opts.format)
			}

			if opts.output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", opts.output, err)
			}
			printSuccess("Exported %d packages", g.PackageCount())
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "C", opts.dir, "workspace root directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.external, "external", false, "include packages outside the workspace")

	return cmd
}
