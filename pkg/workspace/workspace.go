package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
)

// DefinitionFile is the workspace definition filename at the workspace root.
const DefinitionFile = "pnpm-workspace.yaml"

// Definition is the decoded pnpm-workspace.yaml. Only the keys this tool
// reads are represented; the catalog editor works on the raw document nodes
// instead (pkg/catalog) to preserve formatting.
type Definition struct {
	Packages []string                     `yaml:"packages"`
	Catalog  map[string]string            `yaml:"catalog"`
	Catalogs map[string]map[string]string `yaml:"catalogs"`
}

// Workspace holds the loaded state of a pnpm workspace: its root directory,
// the decoded definition, and the parsed manifest of every member package.
type Workspace struct {
	Root       string
	Definition Definition
	Packages   []*Manifest
}

// Load reads the workspace definition at root and parses every member
// manifest matched by the definition's package globs.
//
// Member directories are matched by path relative to the root using
// '/'-separated glob patterns ("packages/*", "apps/**"). Patterns prefixed
// with '!' exclude previously matched directories, as pnpm allows. The root
// itself is a member when it has a package.json. node_modules and hidden
// directories are never descended into.
//
// Manifests that declare no name cannot participate in the name-keyed
// dependency graph and are skipped.
func Load(root string) (*Workspace, error) {
	def, err := readDefinition(root)
	if err != nil {
		return nil, err
	}

	include, exclude, err := compileGlobs(def.Packages)
	if err != nil {
		return nil, err
	}

	dirs, err := memberDirs(root, include, exclude)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{Root: root, Definition: def}
	for _, dir := range dirs {
		m, err := ParseManifest(filepath.Join(root, dir))
		if err != nil {
			if errors.Is(err, errors.ErrCodeFileNotFound) {
				continue
			}
			return nil, err
		}
		m.Dir = dir
		if m.Name == "" {
			continue
		}
		ws.Packages = append(ws.Packages, m)
	}

	return ws, nil
}

// DefinitionPath returns the path of the pnpm-workspace.yaml file.
func (w *Workspace) DefinitionPath() string {
	return filepath.Join(w.Root, DefinitionFile)
}

func readDefinition(root string) (Definition, error) {
	path := filepath.Join(root, DefinitionFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Definition{}, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "%s not found in %s (not a pnpm workspace?)", DefinitionFile, root)
		}
		return Definition{}, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "reading %s", path)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "parsing %s", path)
	}
	return def, nil
}

func compileGlobs(patterns []string) (include, exclude []glob.Glob, err error) {
	for _, p := range patterns {
		pattern, negated := strings.CutPrefix(p, "!")
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "invalid packages pattern %q", p)
		}
		if negated {
			exclude = append(exclude, g)
		} else {
			include = append(include, g)
		}
	}
	return include, exclude, nil
}

// memberDirs walks root and returns the relative paths of directories that
// match the include globs (and not the exclude globs). The root directory
// "." is always a candidate.
func memberDirs(root string, include, exclude []glob.Glob) ([]string, error) {
	dirs := []string{"."}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == "node_modules" || (strings.HasPrefix(name, ".") && path != root) {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if matchesAny(include, rel) && !matchesAny(exclude, rel) {
			dirs = append(dirs, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "walking workspace %s", root)
	}

	return dirs, nil
}

func matchesAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
