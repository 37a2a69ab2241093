package webprint

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"
)

// Param is a named parameter value of untyped print arguments.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered set of untyped print arguments.
// It is used for arguments coming from dynamic sources, like configuration files
// or request bodies, where the exclusive pairs are not guaranteed by [Args].
//
// Values are expected to be strings, numbers or booleans; nil means absent.
// Names are case-sensitive and unique, parameters are rendered in their order.
// Set keeps names unique; a literal with a repeated name is rejected by [GenerateParams].
type Params []Param

// Get returns the value of the parameter with the given name.
func (ps Params) Get(name string) (any, bool) {
	if i := ps.index(name); i >= 0 {
		return ps[i].Value, true
	}
	return nil, false
}

// Has reports whether the parameter with the given name is present and holds a non-absent value.
func (ps Params) Has(name string) bool {
	v, ok := ps.Get(name)
	if !ok {
		return false
	}
	sv, ok := valueOf(v)
	return !ok || !sv.absent()
}

// Set sets the parameter value. An existing parameter keeps its position.
func (ps *Params) Set(name string, v any) *Params {
	if i := ps.index(name); i >= 0 {
		(*ps)[i].Value = v
	} else {
		*ps = append(*ps, Param{name, v})
	}
	return ps
}

// Del deletes the parameter with the given name.
func (ps *Params) Del(name string) *Params {
	if i := ps.index(name); i >= 0 {
		*ps = slices.Delete(*ps, i, i+1)
	}
	return ps
}

// All returns an iterator over all parameters in order.
func (ps Params) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, p := range ps {
			if !yield(p.Name, p.Value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of ps.
func (ps Params) Clone() Params { return slices.Clone(ps) }

func paramName(p Param) string { return p.Name }

func (ps Params) index(name string) int {
	return slices.IndexFunc(ps, func(p Param) bool { return p.Name == name })
}

// UnmarshalYAML implements [yaml.Unmarshaler].
// The node must be a mapping; keys keep the document order, a repeated key
// overrides the value and keeps the first position.
func (ps *Params) UnmarshalYAML(node *yaml.Node) error {
	for node.Kind == yaml.DocumentNode || node.Kind == yaml.AliasNode {
		if node.Kind == yaml.AliasNode {
			node = node.Alias
		} else if len(node.Content) > 0 {
			node = node.Content[0]
		} else {
			break
		}
	}
	if node.Kind != yaml.MappingNode {
		return errtrace.Wrap(NewInvalidArgumentError("print arguments must be a mapping, got %s at line %d", nodeKind(node), node.Line))
	}

	out := make(Params, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return errtrace.Wrap(NewInvalidArgumentError("parameter name must be a scalar at line %d", k.Line))
		}
		var val any
		if err := v.Decode(&val); err != nil {
			return errtrace.Wrap(NewInvalidArgumentError(fmt.Errorf("decode parameter '%s': %w", k.Value, err)))
		}
		out.Set(k.Value, val)
	}
	*ps = out
	return nil
}

// MarshalYAML implements [yaml.Marshaler].
// Parameters are encoded as a mapping in their order.
func (ps Params) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range ps {
		var v yaml.Node
		if err := v.Encode(p.Value); err != nil {
			return nil, errtrace.Wrap(NewInvalidArgumentError(fmt.Errorf("encode parameter '%s': %w", p.Name, err)))
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p.Name}, &v)
	}
	return node, nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar " + node.ShortTag()
	default:
		return "empty document"
	}
}

// DecodeParams reads print arguments from a YAML or JSON document.
// The document order of the keys is preserved.
func DecodeParams(r io.Reader) (Params, error) {
	var ps Params
	if err := yaml.NewDecoder(r).Decode(&ps); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errtrace.Wrap(NewInvalidArgumentError("empty print arguments document"))
		}
		return nil, errtrace.Wrap(err)
	}
	return ps, nil
}
