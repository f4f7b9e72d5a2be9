package depgraph

// Inverted maps each workspace package name to the set of workspace packages
// that directly depend on it. Derived once from a Graph and read-only
// afterwards.
type Inverted map[string]map[string]struct{}

// Invert produces the inverted adjacency of the graph in O(E).
//
// Every workspace member gets an entry, so packages with zero dependents are
// represented by an empty set rather than a missing key. External edges are
// dropped: an external dependency has no dependents to report within the
// workspace.
func (g *Graph) Invert() Inverted {
	inv := make(Inverted, len(g.packages))
	for name := range g.packages {
		inv[name] = make(map[string]struct{})
	}

	for _, e := range g.edges {
		if e.To.Kind != TargetWorkspace {
			continue
		}
		inv[e.To.Name][e.From] = struct{}{}
	}

	return inv
}

// Dependents returns the number of direct dependents of name.
func (inv Inverted) Dependents(name string) int { return len(inv[name]) }
