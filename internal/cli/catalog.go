package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pnpm-extra/pnpm-extra/pkg/catalog"
	"github.com/pnpm-extra/pnpm-extra/pkg/config"
	"github.com/pnpm-extra/pnpm-extra/pkg/formatter"
	"github.com/pnpm-extra/pnpm-extra/pkg/registry"
	"github.com/pnpm-extra/pnpm-extra/pkg/workspace"
)

// catalogOpts holds the command-line flags for the catalog add command.
type catalogOpts struct {
	dir      string // workspace root
	name     string // target catalog name; empty means the default catalog
	refresh  bool   // bypass the registry cache
	noFormat bool   // skip the formatter after writing
}

// newCatalogCmd creates the catalog command group.
func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Edit catalog entries in pnpm-workspace.yaml",
	}
	cmd.AddCommand(newCatalogAddCmd())
	return cmd
}

// newCatalogAddCmd creates the catalog add command. Each argument is a
// package name with an optional version range; without a range, the latest
// published version is fetched from the registry and stored as "^<latest>".
func newCatalogAddCmd() *cobra.Command {
	opts := catalogOpts{dir: "."}

	cmd := &cobra.Command{
		Use:   "add <package[@range]>...",
		Short: "Add entries to a workspace catalog",
		Long: `Add entries to a catalog in pnpm-workspace.yaml.

Each argument names a package, optionally followed by @ and a version
range. Without a range, the latest version is resolved from the registry
and stored as a caret range. The catalog section is created when missing,
and existing entries for the same package are overwritten.

After writing, the configured formatter (pnpm exec prettier --write by
default) is run on pnpm-workspace.yaml; a formatter failure is reported
as a warning and does not fail the command.

Examples:
  pnpm-extra catalog add react              # resolve latest, store ^x.y.z
  pnpm-extra catalog add react@^18.2.0      # store the given range
  pnpm-extra catalog add react --catalog react18`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogAdd(cmd.Context(), &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "C", opts.dir, "workspace root directory")
	cmd.Flags().StringVar(&opts.name, "catalog", "", "target catalog name (default catalog if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the registry cache")
	cmd.Flags().BoolVar(&opts.noFormat, "no-format", false, "skip formatting after writing")

	return cmd
}

func runCatalogAdd(ctx context.Context, opts *catalogOpts, args []string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.dir)
	if err != nil {
		return err
	}
	catalogName := opts.name
	if catalogName == "" {
		catalogName = cfg.Catalog.Name
	}

	entries := make([]catalog.Entry, len(args))
	var unresolved []int
	for i, arg := range args {
		name, rng := splitSpec(arg)
		entries[i] = catalog.Entry{Name: name, Version: rng}
		if rng == "" {
			unresolved = append(unresolved, i)
		}
	}

	if len(unresolved) > 0 {
		if err := resolveLatest(ctx, cfg, entries, unresolved, opts.refresh); err != nil {
			return err
		}
	}

	doc, err := catalog.Load(filepath.Join(opts.dir, workspace.DefinitionFile))
	if err != nil {
		return err
	}
	if err := doc.AddEntries(catalogName, entries); err != nil {
		return err
	}
	if err := doc.Save(); err != nil {
		return err
	}

	if !opts.noFormat && !cfg.Formatter.Disable {
		f, err := formatter.New(cfg.Formatter.Command, opts.dir)
		if err != nil {
			return err
		}
		if err := f.Format(ctx, workspace.DefinitionFile); err != nil {
			logger.Debugf("Formatter error: %v", err)
			printWarning("Formatter failed, file left unformatted (%s)", f)
		}
	}

	target := "catalog"
	if catalogName != "" && catalogName != catalog.DefaultCatalog {
		target = "catalog " + catalogName
	}
	printSuccess("Added %d %s to %s", len(entries), plural("entry", "entries", len(entries)), target)
	for _, e := range entries {
		printDetail("%s: %s", e.Name, e.Version)
	}
	printFile(doc.Path())
	return nil
}

// resolveLatest fills in the version for entries without an explicit range
// by asking the registry for the latest published version.
func resolveLatest(ctx context.Context, cfg *config.Config, entries []catalog.Entry, idx []int, refresh bool) error {
	client, err := registry.NewClient(cfg.Registry.URL, cfg.Registry.CacheTTL)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spin := startSpinner(ctx, "Resolving latest versions...")
	defer spin.Stop()

	for _, i := range idx {
		latest, err := client.Latest(ctx, entries[i].Name, refresh)
		if err != nil {
			return err
		}
		entries[i].Version = "^" + latest
		logger.Debugf("Resolved %s to %s", entries[i].Name, latest)
	}

	spin.Stop()
	prog.done(fmt.Sprintf("Resolved %d %s", len(idx), plural("version", "versions", len(idx))))
	return nil
}

// splitSpec splits "name@range" at the last "@", leaving the leading "@" of
// scoped names alone. The range is empty when the argument carries none.
func splitSpec(arg string) (name, rng string) {
	if i := strings.LastIndex(arg, "@"); i > 0 {
		return arg[:i], arg[i+1:]
	}
	return arg, ""
}

func plural(singular, plural string, n int) string {
	if n == 1 {
		return singular
	}
	return plural
}
