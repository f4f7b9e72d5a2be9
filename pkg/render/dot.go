// Package render exports the workspace dependency graph as Graphviz DOT
// and renders it to SVG.
package render

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pnpm-extra/pnpm-extra/pkg/depgraph"
	"github.com/pnpm-extra/pnpm-extra/pkg/workspace"
)

// Options configures DOT export.
type Options struct {
	// External includes packages outside the workspace as dashed grey
	// nodes. When false, only workspace members and the edges between
	// them are drawn.
	External bool
}

// ToDOT converts the workspace graph to Graphviz DOT. Workspace members are
// labeled name@version; external packages (when included) show the required
// range instead.
func ToDOT(g *depgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph workspace {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, name := range g.PackageNames() {
		m, ok := g.Package(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, m.Label())
	}

	if opts.External {
		externals := map[string]string{}
		for _, e := range g.Edges() {
			if e.To.Kind == depgraph.TargetExternal {
				externals[e.To.Name] = e.Range
			}
		}
		names := make([]string, 0, len(externals))
		for name := range externals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			label := name
			if r := externals[name]; r != "" {
				label = name + "\n" + r
			}
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", name, label)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.To.Kind == depgraph.TargetExternal && !opts.External {
			continue
		}
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To.Name)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To.Name, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e depgraph.Edge) []string {
	switch e.DepKind {
	case workspace.KindDev:
		return []string{"style=dashed"}
	case workspace.KindPeer:
		return []string{"style=dotted"}
	case workspace.KindOptional:
		return []string{"style=dotted", "color=grey"}
	default:
		return nil
	}
}

// RenderSVG renders a DOT graph to SVG bytes using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
