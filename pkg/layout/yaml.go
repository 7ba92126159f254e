package layout

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	fserrors "github.com/rawbytedev/fstruct/errors"
)

// LoadYAML plans every layout declared in data. The document is a mapping
// of layout name to a mapping of field name to type tag:
//
//	window:
//	  title: ptr
//	  x: i32
//	  y: i32
//
// Field order follows the order of the keys in the document.
func LoadYAML(data []byte) (map[string]*Layout, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fserrors.Wrap(fserrors.KindInvalidFieldType, err, "decode layout declarations")
	}
	node := &root
	if node.Kind == 0 {
		return map[string]*Layout{}, nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return map[string]*Layout{}, nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: layout declarations must be a mapping", node.Line)
	}

	out := make(map[string]*Layout, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, body := node.Content[i].Value, node.Content[i+1]
		if _, dup := out[name]; dup {
			return nil, errors.Errorf("line %d: duplicate layout %q", node.Content[i].Line, name)
		}
		decls, err := declsOf(body)
		if err != nil {
			return nil, errors.Wrapf(err, "layout %q", name)
		}
		l, err := Plan(decls...)
		if err != nil {
			return nil, errors.Wrapf(err, "layout %q", name)
		}
		out[name] = l
	}
	return out, nil
}

func declsOf(node *yaml.Node) ([]Decl, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: fields must be a mapping of name to type", node.Line)
	}
	decls := make([]Decl, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fserrors.InvalidFieldType(k.Value, "", "type must be a scalar tag")
		}
		decls = append(decls, Decl{Name: k.Value, Type: v.Value})
	}
	return decls, nil
}

// LoadFile reads and plans a YAML declarations file.
func LoadFile(path string) (map[string]*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read layout declarations")
	}
	layouts, err := LoadYAML(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return layouts, nil
}
