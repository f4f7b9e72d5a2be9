// Package workspace discovers and parses the packages of a pnpm workspace.
//
// A workspace is defined by a pnpm-workspace.yaml file at its root. Its
// "packages" key lists glob patterns naming the directories that hold member
// packages, each with its own package.json. The workspace root itself is a
// member when it has a package.json.
//
// [Load] walks the workspace, matches directories against the configured
// globs, and parses every member manifest. The resulting [Manifest] records
// feed the dependency graph builder in pkg/depgraph.
package workspace
