package depgraph

import (
	"sort"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
	"github.com/pnpm-extra/pnpm-extra/pkg/workspace"
)

// TargetKind distinguishes edges that resolve to a workspace member from
// edges that leave the workspace.
type TargetKind int

const (
	// TargetWorkspace marks an edge whose dependency is itself a workspace member.
	TargetWorkspace TargetKind = iota
	// TargetExternal marks an edge whose dependency is not part of the
	// workspace (a registry package). External edges are tracked so that a
	// member with only external dependencies is distinguishable from one
	// with none at all, but they never participate in inversion.
	TargetExternal
)

// Target is the resolved endpoint of a dependency edge.
type Target struct {
	Kind TargetKind
	Name string
}

// Edge is one dependency declaration: From (a workspace package name)
// depends on To, with the declared version range and manifest section.
type Edge struct {
	From    string
	To      Target
	Range   string
	DepKind workspace.DepKind
}

// Graph is the whole-workspace dependency graph: every member package plus
// every dependency edge among them. Construction imposes no ordering;
// ordering is the renderer's concern.
type Graph struct {
	packages map[string]*workspace.Manifest
	edges    []Edge
}

// Options controls which dependency kinds participate in the graph.
// The zero value includes only runtime dependencies; use [DefaultOptions]
// for the default of including every kind.
type Options struct {
	IncludeDev      bool
	IncludePeer     bool
	IncludeOptional bool
}

// DefaultOptions includes all dependency kinds, the documented default for
// the inverse tree.
func DefaultOptions() Options {
	return Options{IncludeDev: true, IncludePeer: true, IncludeOptional: true}
}

func (o Options) includes(kind workspace.DepKind) bool {
	switch kind {
	case workspace.KindDev:
		return o.IncludeDev
	case workspace.KindPeer:
		return o.IncludePeer
	case workspace.KindOptional:
		return o.IncludeOptional
	default:
		return true
	}
}

// Build constructs the workspace graph from parsed member manifests.
//
// A dependency specifier matches a workspace member by exact name only;
// version-range compatibility is not checked. Specifiers that match no
// member become external targets, not errors.
//
// Build fails with CONFLICTING_PACKAGE_NAME when two manifests declare the
// same name, naming both locations.
func Build(manifests []*workspace.Manifest, opts Options) (*Graph, error) {
	g := &Graph{packages: make(map[string]*workspace.Manifest, len(manifests))}

	for _, m := range manifests {
		if prev, ok := g.packages[m.Name]; ok {
			return nil, errors.New(errors.ErrCodeConflictingPackageName,
				"package %q declared in both %s and %s", m.Name, prev.Dir, m.Dir)
		}
		g.packages[m.Name] = m
	}

	for _, m := range manifests {
		for _, spec := range m.Specs() {
			if !opts.includes(spec.Kind) {
				continue
			}
			to := Target{Kind: TargetExternal, Name: spec.Name}
			if _, ok := g.packages[spec.Name]; ok {
				to.Kind = TargetWorkspace
			}
			g.edges = append(g.edges, Edge{
				From:    m.Name,
				To:      to,
				Range:   spec.Range,
				DepKind: spec.Kind,
			})
		}
	}

	return g, nil
}

// Package returns the manifest for the named workspace member.
func (g *Graph) Package(name string) (*workspace.Manifest, bool) {
	m, ok := g.packages[name]
	return m, ok
}

// PackageNames returns every workspace member name in ascending
// lexicographic order.
func (g *Graph) PackageNames() []string {
	names := make([]string, 0, len(g.packages))
	for name := range g.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PackageCount returns the number of workspace members.
func (g *Graph) PackageCount() int { return len(g.packages) }

// Edges returns all dependency edges, including external ones, in
// manifest order with each manifest's declarations sorted by section
// and name.
func (g *Graph) Edges() []Edge { return g.edges }
