package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a tree file.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
)

// leafKey marks a mapping as a leaf definition instead of a branch.
const leafKey = "cmd"

// FormatFromPath infers the format from the file extension (YAML by default).
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".jsonc":
		return FormatJSONC
	default:
		return FormatYAML
	}
}

// NameFromPath extracts a tree name from a file path by stripping the
// directory prefix and the extension ("trees/deploy.yaml" -> "deploy").
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads and parses a command tree file.
func Load(path string) (*domain.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read command tree: %w", err)
	}
	root, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Parse decodes a command tree, preserving the order of mapping keys.
//
// A string value is a simple leaf. A mapping with a "cmd" key is a leaf
// definition ({cmd, dry_run_first}). Any other mapping is a branch.
func Parse(data []byte, format Format) (*domain.Node, error) {
	var (
		raw any
		err error
	)
	switch format {
	case FormatJSONC:
		raw, err = decodeJSON(jsonc.ToJSON(data))
	case FormatJSON:
		raw, err = decodeJSON(data)
	default:
		raw, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	root, err := build(nil, raw)
	if err != nil {
		return nil, err
	}
	if root.IsLeaf() {
		return nil, fmt.Errorf("%w: root must be a branch", domain.ErrInvalidTree)
	}
	return root, nil
}

// entry is one key/value pair of a mapping, kept in document order.
type entry struct {
	key   string
	value any
}

// mapping is an ordered object.
type mapping []entry

func build(path domain.Path, raw any) (*domain.Node, error) {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, treeError(path, "empty command")
		}
		return domain.NewLeaf(v), nil

	case mapping:
		if v.has(leafKey) {
			return buildLeaf(path, v)
		}
		if len(v) == 0 {
			return nil, treeError(path, "empty branch")
		}

		seen := make(map[string]bool, len(v))
		children := make([]domain.Child, 0, len(v))
		for _, e := range v {
			if seen[e.key] {
				return nil, treeError(path, fmt.Sprintf("duplicate label %q", e.key))
			}
			seen[e.key] = true

			child, err := build(append(path.Clone(), e.key), e.value)
			if err != nil {
				return nil, err
			}
			children = append(children, domain.Branch(e.key, child))
		}
		return domain.NewBranch(children...), nil

	case nil:
		return nil, treeError(path, "missing value")

	default:
		return nil, treeError(path, fmt.Sprintf("unsupported value of type %T", raw))
	}
}

func buildLeaf(path domain.Path, m mapping) (*domain.Node, error) {
	fields := make(map[string]any, len(m))
	for _, e := range m {
		if _, nested := e.value.(mapping); nested {
			return nil, treeError(path, fmt.Sprintf("leaf definition cannot contain child %q", e.key))
		}
		fields[e.key] = e.value
	}

	var leaf domain.Leaf
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &leaf,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, treeError(path, fmt.Sprintf("invalid leaf definition: %v", err))
	}
	if strings.TrimSpace(leaf.Command) == "" {
		return nil, treeError(path, "empty command")
	}
	return &domain.Node{Kind: domain.KindLeaf, Leaf: &leaf}, nil
}

func (m mapping) has(key string) bool {
	for _, e := range m {
		if e.key == key {
			return true
		}
	}
	return false
}

func treeError(path domain.Path, msg string) error {
	where := "<root>"
	if len(path) > 0 {
		where = path.String()
	}
	return fmt.Errorf("%w: %s: %s", domain.ErrInvalidTree, where, msg)
}

func decodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTree, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidTree)
	}
	return fromYAML(doc.Content[0])
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		m := make(mapping, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: labels must be scalars", domain.ErrInvalidTree, key.Line)
			}
			value, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m = append(m, entry{key: key.Value, value: value})
		}
		return m, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidTree, n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: line %d: sequences are not supported", domain.ErrInvalidTree, n.Line)
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := readJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTree, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", domain.ErrInvalidTree)
	}
	return v, nil
}

// readJSON walks the token stream so object keys keep their order.
func readJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		var m mapping
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			value, err := readJSON(dec)
			if err != nil {
				return nil, err
			}
			m = append(m, entry{key: key, value: value})
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, err
		}
		if m == nil {
			m = mapping{}
		}
		return m, nil
	case '[':
		return nil, errors.New("arrays are not supported")
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
