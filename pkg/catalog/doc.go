// Package catalog edits the catalog sections of a pnpm-workspace.yaml
// document.
//
// pnpm workspaces share pinned dependency versions through a "catalog"
// mapping (and optional named mappings under "catalogs") in the workspace
// definition. This package adds and updates entries in those mappings.
//
// The document is handled as a yaml.Node tree rather than a decoded map, so
// unrelated keys, key order, and comments survive an edit. Output formatting
// still differs from hand-written YAML in places (quoting style, blank
// lines); the catalog command runs an external formatter after writing to
// normalize that, and a formatter failure leaves the file with this
// package's formatting.
package catalog
