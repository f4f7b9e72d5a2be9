package catalog

import (
	"gopkg.in/yaml.v3"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
)

// DefaultCatalog is the name addressing the top-level "catalog" mapping.
// Any other name addresses a named mapping under "catalogs".
const DefaultCatalog = "default"

// Entry is one (package name, pinned version) pair to add to a catalog.
type Entry struct {
	Name    string
	Version string
}

// AddEntries inserts or updates entries in the named catalog, in order.
// An entry whose name already exists overwrites that entry's version; with
// duplicate names in entries, the last write wins. Everything else in the
// document is left untouched.
//
// All entries are validated before any mutation, so a bad name or version
// specifier leaves the document unchanged (no partial write). The target
// catalog mapping is created when absent; MISSING_CATALOG_SECTION is
// returned only when an existing "catalog" or "catalogs" key is not a
// mapping.
func (d *Document) AddEntries(catalogName string, entries []Entry) error {
	for _, e := range entries {
		if err := errors.ValidateNpmPackageName(e.Name); err != nil {
			return err
		}
		if err := errors.ValidateVersionSpec(e.Version); err != nil {
			return err
		}
	}

	section, err := d.catalogSection(catalogName)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if v := mapValue(section, e.Name); v != nil {
			v.SetString(e.Version)
			continue
		}
		section.Content = append(section.Content, scalar(e.Name), scalar(e.Version))
	}
	return nil
}

// Catalog returns a snapshot of the named catalog mapping. A missing
// catalog yields an empty map, matching the auto-create behavior of
// [Document.AddEntries].
func (d *Document) Catalog(catalogName string) (map[string]string, error) {
	section, err := d.lookupSection(catalogName)
	if err != nil {
		return nil, err
	}

	out := map[string]string{}
	if section == nil {
		return out, nil
	}
	for i := 0; i+1 < len(section.Content); i += 2 {
		out[section.Content[i].Value] = section.Content[i+1].Value
	}
	return out, nil
}

// catalogSection returns the mapping node for the named catalog, creating
// missing levels.
func (d *Document) catalogSection(catalogName string) (*yaml.Node, error) {
	if catalogName == "" || catalogName == DefaultCatalog {
		return ensureMapping(d.root, "catalog", errors.ErrCodeMissingCatalogSection)
	}
	catalogs, err := ensureMapping(d.root, "catalogs", errors.ErrCodeMissingCatalogSection)
	if err != nil {
		return nil, err
	}
	return ensureMapping(catalogs, catalogName, errors.ErrCodeMissingCatalogSection)
}

// lookupSection is the read-only counterpart of catalogSection: it never
// mutates the document and returns nil for an absent catalog.
func (d *Document) lookupSection(catalogName string) (*yaml.Node, error) {
	if catalogName == "" || catalogName == DefaultCatalog {
		return d.checkMapping(mapValue(d.root, "catalog"), "catalog")
	}
	catalogs, err := d.checkMapping(mapValue(d.root, "catalogs"), "catalogs")
	if err != nil || catalogs == nil {
		return nil, err
	}
	return d.checkMapping(mapValue(catalogs, catalogName), catalogName)
}

func (d *Document) checkMapping(n *yaml.Node, key string) (*yaml.Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeMissingCatalogSection, "%q is not a mapping in pnpm-workspace.yaml", key)
	}
	return n, nil
}
