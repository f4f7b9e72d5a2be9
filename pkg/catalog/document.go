package catalog

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
	"github.com/pnpm-extra/pnpm-extra/pkg/workspace"
)

// Document is a parsed pnpm-workspace.yaml held as a yaml.Node tree.
type Document struct {
	path string
	root *yaml.Node // the top-level mapping
}

// Load reads and parses the pnpm-workspace.yaml at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "reading %s", path)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}
	d.path = path
	return d, nil
}

// Parse parses workspace definition bytes. An empty document yields an
// empty mapping.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "parsing %s", workspace.DefinitionFile)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidWorkspace, "%s content is not a mapping", workspace.DefinitionFile)
	}

	return &Document{root: root}, nil
}

// Bytes serializes the document with 2-space indentation.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serializing %s", workspace.DefinitionFile)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serializing %s", workspace.DefinitionFile)
	}
	return buf.Bytes(), nil
}

// Save writes the document back to the file it was loaded from.
func (d *Document) Save() error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", d.path)
	}
	return nil
}

// Path returns the file the document was loaded from; empty for documents
// created with [Parse].
func (d *Document) Path() string { return d.path }

// mapValue returns the value node for key in mapping m, or nil.
func mapValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// ensureMapping returns the mapping value for key in m, appending an empty
// mapping when the key is absent. An existing non-mapping value is an error;
// code is the error code to report in that case.
func ensureMapping(m *yaml.Node, key string, code errors.Code) (*yaml.Node, error) {
	if v := mapValue(m, key); v != nil {
		if v.Kind != yaml.MappingNode {
			return nil, errors.New(code, "%q is not a mapping in %s", key, workspace.DefinitionFile)
		}
		return v, nil
	}

	v := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		v,
	)
	return v, nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
