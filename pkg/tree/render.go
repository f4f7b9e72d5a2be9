package tree

import (
	"fmt"
	"iter"
	"sort"

	"github.com/pnpm-extra/pnpm-extra/pkg/depgraph"
	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
)

// CollapsedMarker is appended to a node that was already expanded earlier in
// the render.
const CollapsedMarker = " (*)"

// indentWidth is the number of spaces per depth level.
const indentWidth = 2

// Line is one rendered node of the forest: the package's display label, its
// depth in the current subtree, and whether the node was collapsed because
// its subtree was already printed under an earlier branch.
type Line struct {
	Label       string
	Depth       int
	Collapsed   bool
	HasChildren bool // the node has dependents (expanded below when not collapsed)
}

// String formats the line the way the tree command prints it: two spaces of
// indentation per depth level, a trailing colon on expanded nodes that have
// children, and the collapsed marker on repeats.
func (l Line) String() string {
	suffix := ""
	switch {
	case l.Collapsed:
		suffix = CollapsedMarker
	case l.HasChildren:
		suffix = ":"
	}
	return fmt.Sprintf("%*s%s%s", l.Depth*indentWidth, "", l.Label, suffix)
}

// Renderer walks an inverted workspace graph depth-first and yields display
// lines. The visited set persists across calls, so the sequences it returns
// are one-shot: rendering the forest and then a single tree from the same
// Renderer would collapse everything the forest already printed. Create one
// Renderer per render.
type Renderer struct {
	graph *depgraph.Graph
	inv   depgraph.Inverted
	seen  map[string]bool
}

// NewRenderer creates a Renderer over the graph's inverted adjacency.
func NewRenderer(g *depgraph.Graph) *Renderer {
	return &Renderer{
		graph: g,
		inv:   g.Invert(),
		seen:  make(map[string]bool, g.PackageCount()),
	}
}

// Forest yields the full inverse dependency forest: one root subtree per
// workspace package, roots in ascending case-sensitive lexicographic name
// order. The sequence is lazy, finite, and non-restartable.
func (r *Renderer) Forest() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, name := range r.graph.PackageNames() {
			if !r.walk(name, 0, yield) {
				return
			}
		}
	}
}

// Tree yields the inverse dependency tree rooted at the named workspace
// package. Returns PACKAGE_NOT_FOUND when name is not a workspace member.
func (r *Renderer) Tree(name string) (iter.Seq[Line], error) {
	if _, ok := r.graph.Package(name); !ok {
		return nil, errors.New(errors.ErrCodePackageNotFound, "package %q is not part of the workspace", name)
	}
	return func(yield func(Line) bool) {
		r.walk(name, 0, yield)
	}, nil
}

// walk emits name at the given depth and, on first visit, recurses into its
// dependents in name order. The node is marked seen before recursing; a
// cycle reaching back to a node still mid-expansion therefore collapses
// instead of recursing. Returns false once yield does.
func (r *Renderer) walk(name string, depth int, yield func(Line) bool) bool {
	dependents := r.dependents(name)

	if r.seen[name] {
		return yield(Line{
			Label:       r.label(name),
			Depth:       depth,
			Collapsed:   true,
			HasChildren: len(dependents) > 0,
		})
	}
	r.seen[name] = true

	if !yield(Line{Label: r.label(name), Depth: depth, HasChildren: len(dependents) > 0}) {
		return false
	}
	for _, dep := range dependents {
		if !r.walk(dep, depth+1, yield) {
			return false
		}
	}
	return true
}

// dependents returns the direct dependents of name in ascending name order.
func (r *Renderer) dependents(name string) []string {
	set := r.inv[name]
	deps := make([]string, 0, len(set))
	for dep := range set {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

func (r *Renderer) label(name string) string {
	if m, ok := r.graph.Package(name); ok {
		return m.Label()
	}
	// A dependent missing from the package set is an invariant violation in
	// the builder, not a user error; render the bare name rather than panic.
	return name
}
