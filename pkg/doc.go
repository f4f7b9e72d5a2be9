// Package pkg provides the core libraries behind the pnpm-extra CLI.
//
// # Overview
//
// pnpm-extra works on pnpm workspaces: monorepos whose members are declared
// by globs in pnpm-workspace.yaml. The pkg directory is organized along the
// data flow:
//
//  1. [workspace] - Discover members and parse their package.json manifests
//  2. [depgraph] - Build and invert the workspace dependency graph
//  3. [tree] - Render the inverse dependency tree as indented text
//  4. [catalog] - Edit catalog entries in pnpm-workspace.yaml
//  5. [registry] - Resolve latest versions from an npm registry
//  6. [render] - Export the graph as Graphviz DOT or SVG
//
// # Architecture
//
// The typical flow for the tree command:
//
//	pnpm-workspace.yaml + package.json files
//	         ↓
//	workspace.Load → depgraph.Build → Graph.Invert → tree.Renderer
//	         ↓
//	indented text on stdout
//
// and for catalog add:
//
//	registry.Client.Latest (when no range given)
//	         ↓
//	catalog.Document.AddEntries → Save → formatter.Format
//
// Supporting packages: [errors] for coded errors and input validation,
// [httputil] for retries and the on-disk response cache, [config] for
// .pnpm-extra.toml settings, [formatter] for running prettier, and
// [buildinfo] for version stamping.
package pkg
