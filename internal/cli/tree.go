package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pnpm-extra/pnpm-extra/pkg/config"
	"github.com/pnpm-extra/pnpm-extra/pkg/depgraph"
	"github.com/pnpm-extra/pnpm-extra/pkg/tree"
	"github.com/pnpm-extra/pnpm-extra/pkg/workspace"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	dir        string // workspace root
	noDev      bool   // exclude devDependencies edges
	noPeer     bool   // exclude peerDependencies edges
	noOptional bool   // exclude optionalDependencies edges
}

// graphOptions merges config defaults with explicit flag overrides.
func (o *treeOpts) graphOptions(cmd *cobra.Command, cfg *config.Config) depgraph.Options {
	opts := depgraph.Options{
		IncludeDev:      cfg.Tree.Dev,
		IncludePeer:     cfg.Tree.Peer,
		IncludeOptional: cfg.Tree.Optional,
	}
	if cmd.Flags().Changed("no-dev") {
		opts.IncludeDev = !o.noDev
	}
	if cmd.Flags().Changed("no-peer") {
		opts.IncludePeer = !o.noPeer
	}
	if cmd.Flags().Changed("no-optional") {
		opts.IncludeOptional = !o.noOptional
	}
	return opts
}

// newTreeCmd creates the tree command, which prints the inverse dependency
// tree of the workspace: each package with the packages that depend on it,
// recursively. A package already expanded elsewhere is shown collapsed with
// a "(*)" marker.
func newTreeCmd() *cobra.Command {
	opts := treeOpts{dir: "."}

	cmd := &cobra.Command{
		Use:   "tree [package...]",
		Short: "Print the inverse dependency tree of the workspace",
		Long: `Print the inverse dependency tree of the workspace.

Without arguments, every workspace package is printed as a root in
lexicographic order, each followed by its dependents, recursively. With
package names, only those packages are printed as roots.

A trailing ":" marks a package whose dependents follow; "(*)" marks a
package already expanded earlier in the output.

Examples:
  pnpm-extra tree               # whole workspace
  pnpm-extra tree @scope/core   # dependents of one package
  pnpm-extra tree --no-dev      # ignore devDependencies edges`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(opts.dir)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			ws, err := workspace.Load(opts.dir)
			if err != nil {
				return err
			}

			g, err := depgraph.Build(ws.Packages, opts.graphOptions(cmd, cfg))
			if err != nil {
				return err
			}
			logger.Debugf("Workspace has %d packages, %d dependency edges", g.PackageCount(), len(g.Edges()))

			r := tree.NewRenderer(g)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for line := range r.Forest() {
					fmt.Fprintln(out, line)
				}
			} else {
				for _, name := range args {
					seq, err := r.Tree(name)
					if err != nil {
						return err
					}
					for line := range seq {
						fmt.Fprintln(out, line)
					}
				}
			}

			prog.done(fmt.Sprintf("Rendered %d packages", g.PackageCount()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "C", opts.dir, "workspace root directory")
	cmd.Flags().BoolVar(&opts.noDev, "no-dev", false, "exclude devDependencies edges")
	cmd.Flags().BoolVar(&opts.noPeer, "no-peer", false, "exclude peerDependencies edges")
	cmd.Flags().BoolVar(&opts.noOptional, "no-optional", false, "exclude optionalDependencies edges")

	return cmd
}
