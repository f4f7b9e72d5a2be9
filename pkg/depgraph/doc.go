// Package depgraph builds the whole-workspace dependency graph and its
// inversion.
//
// [Build] aggregates the dependency declarations of every workspace member
// into a directed graph where an edge A → B means "A depends on B". A
// declaration naming another workspace member resolves to that member; any
// other declaration resolves to an external target. The two cases are kept
// as a tagged [Target] so external edges cannot leak into the inversion.
//
// [Graph.Invert] flips edge direction, mapping each workspace package to the
// set of workspace packages that directly depend on it. External targets are
// dropped; they have no dependents to report inside the workspace.
//
// The graph is rebuilt from freshly parsed manifests on every run and may
// contain cycles (workspace members depending on each other in a loop).
// Cycle handling is the tree renderer's concern, not the builder's.
package depgraph
