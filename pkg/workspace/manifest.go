package workspace

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
)

// ManifestFile is the per-package manifest filename.
const ManifestFile = "package.json"

// DepKind classifies a dependency declaration by the manifest section it
// came from.
type DepKind string

// Dependency kinds, one per package.json dependency section.
const (
	KindRuntime  DepKind = "runtime"
	KindDev      DepKind = "dev"
	KindPeer     DepKind = "peer"
	KindOptional DepKind = "optional"
)

// Manifest is the parsed package.json of one workspace member.
type Manifest struct {
	Name    string // Package name; empty if the manifest declares none
	Version string
	Dir     string // Directory containing the package.json, relative to the workspace root

	Dependencies         map[string]string
	DevDependencies      map[string]string
	PeerDependencies     map[string]string
	OptionalDependencies map[string]string
}

// Spec is a single dependency declaration: the requested name, the version
// range as written, and which manifest section declared it.
type Spec struct {
	Name  string
	Range string
	Kind  DepKind
}

// Specs returns every dependency declaration of the manifest across all four
// sections, section by section with names sorted within each section.
func (m *Manifest) Specs() []Spec {
	sections := []struct {
		deps map[string]string
		kind DepKind
	}{
		{m.Dependencies, KindRuntime},
		{m.DevDependencies, KindDev},
		{m.PeerDependencies, KindPeer},
		{m.OptionalDependencies, KindOptional},
	}

	var specs []Spec
	for _, s := range sections {
		for _, name := range slices.Sorted(maps.Keys(s.deps)) {
			specs = append(specs, Spec{Name: name, Range: s.deps[name], Kind: s.kind})
		}
	}
	return specs
}

// Label returns "name@version", or just the name when the manifest declares
// no version. Used as the display form in tree output.
func (m *Manifest) Label() string {
	if m.Version == "" {
		return m.Name
	}
	return m.Name + "@" + m.Version
}

// ParseManifest reads and parses the package.json in dir. The returned
// Manifest has Dir set to dir as given.
func ParseManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no %s in %s", ManifestFile, dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "reading %s", path)
	}

	var pkg manifestFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parsing %s", path)
	}

	return &Manifest{
		Name:                 pkg.Name,
		Version:              pkg.Version,
		Dir:                  dir,
		Dependencies:         pkg.Dependencies,
		DevDependencies:      pkg.DevDependencies,
		PeerDependencies:     pkg.PeerDependencies,
		OptionalDependencies: pkg.OptionalDependencies,
	}, nil
}

type manifestFile struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}
