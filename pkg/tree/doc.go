// Package tree renders the inverse dependency forest of a workspace.
//
// The forest has one root per workspace package, in name order. Under each
// root, a node's children are its direct dependents, also in name order, so
// the tree answers "who depends on this?" the way cargo tree -i does.
//
// Without deduplication such a forest explodes: a package with many
// dependents is re-expanded under every path that reaches it, and a
// dependency cycle never terminates at all. The renderer therefore keeps a
// single visited set across the whole render. The first visit to a package
// expands it; every later visit, anywhere in the forest, prints it as a
// collapsed leaf marked "(*)". Marking happens before recursion, so cycles
// collapse instead of recursing forever, and total expanded output is
// bounded by the number of workspace packages.
package tree
