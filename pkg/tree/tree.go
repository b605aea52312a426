// Package tree holds the live, typed values of a configuration conforming to
// a schema. Set is the only mutator and validates every value against the
// field it targets.
package tree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-viper/mapstructure/v2"

	"github.com/goliatone/go-bdfrgen/pkg/schema"
)

var (
	// ErrTypeMismatch is returned when a value does not satisfy the semantic
	// type of its field. It signals a programming error in the caller.
	ErrTypeMismatch = errors.New("tree: type mismatch")
	// ErrUnknownField is returned for paths that resolve to no field.
	ErrUnknownField = errors.New("tree: unknown field")
)

// TypeMismatchError carries the offending path and value.
type TypeMismatchError struct {
	Path  string
	Kind  schema.Kind
	Value any
	Cause error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("tree: %s: cannot store %T in %s field: %v", e.Path, e.Value, e.Kind, e.Cause)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// Tree is one node of a configuration: values for the fields of a single
// schema, with nested schemas held as child trees.
type Tree struct {
	schema *schema.Schema
	values map[string]any
}

// Defaults instantiates a tree holding every field's declared default.
func Defaults(s *schema.Schema) *Tree {
	t := &Tree{
		schema: s,
		values: make(map[string]any, len(s.Fields)),
	}
	for _, field := range s.Fields {
		if field.Kind == schema.KindNested {
			t.values[field.Name] = Defaults(field.Schema)
			continue
		}
		t.values[field.Name] = copyValue(field.Default)
	}
	return t
}

// Schema returns the schema this node conforms to.
func (t *Tree) Schema() *schema.Schema {
	return t.schema
}

// Sub returns the child tree of a nested field.
func (t *Tree) Sub(name string) (*Tree, bool) {
	child, ok := t.values[name].(*Tree)
	return child, ok
}

// Get returns a copy of the value stored at a dotted path.
func (t *Tree) Get(path string) (any, error) {
	node, field, err := t.resolve(path)
	if err != nil {
		return nil, err
	}
	if field.Kind == schema.KindNested {
		return node.values[field.Name], nil
	}
	return copyValue(node.values[field.Name]), nil
}

// Field returns the descriptor of the field at a dotted path.
func (t *Tree) Field(path string) (schema.Field, error) {
	_, field, err := t.resolve(path)
	return field, err
}

// Set stores value at a dotted path after validating it against the field.
// Go ints are normalised to int64, empty lists to nil, and slices are copied,
// so setting an equal value twice leaves the tree unchanged.
func (t *Tree) Set(path string, value any) error {
	node, field, err := t.resolve(path)
	if err != nil {
		return err
	}
	value = normalize(value)
	if err := field.Accepts(value); err != nil {
		return &TypeMismatchError{Path: path, Kind: field.Kind, Value: value, Cause: err}
	}
	node.values[field.Name] = copyValue(value)
	return nil
}

// IsDefault reports whether the value at path equals the field's default.
func (t *Tree) IsDefault(path string) (bool, error) {
	node, field, err := t.resolve(path)
	if err != nil {
		return false, err
	}
	if field.Kind == schema.KindNested {
		return Equal(node.values[field.Name].(*Tree), Defaults(field.Schema)), nil
	}
	return equalValue(node.values[field.Name], field.Default), nil
}

func (t *Tree) resolve(path string) (*Tree, schema.Field, error) {
	segments := schema.SplitPath(path)
	if len(segments) == 0 {
		return nil, schema.Field{}, fmt.Errorf("%w: empty path", ErrUnknownField)
	}
	node := t
	for i, segment := range segments {
		field, ok := node.schema.Field(segment)
		if !ok {
			return nil, schema.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
		}
		if i == len(segments)-1 {
			return node, field, nil
		}
		child, ok := node.Sub(segment)
		if !ok {
			return nil, schema.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
		}
		node = child
	}
	return nil, schema.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
}

// Clone returns a deep copy sharing only the immutable schema.
func (t *Tree) Clone() *Tree {
	out := &Tree{
		schema: t.schema,
		values: make(map[string]any, len(t.values)),
	}
	for name, value := range t.values {
		if child, ok := value.(*Tree); ok {
			out.values[name] = child.Clone()
			continue
		}
		out.values[name] = copyValue(value)
	}
	return out
}

// Equal reports whether two trees hold the same values for the same schema.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.schema != b.schema {
		return false
	}
	for _, field := range a.schema.Fields {
		av, bv := a.values[field.Name], b.values[field.Name]
		if field.Kind == schema.KindNested {
			if !Equal(av.(*Tree), bv.(*Tree)) {
				return false
			}
			continue
		}
		if !equalValue(av, bv) {
			return false
		}
	}
	return true
}

// Map returns a plain snapshot keyed by field name. Enum members are replaced
// by their wire values and nested trees by maps.
func (t *Tree) Map() map[string]any {
	out := make(map[string]any, len(t.values))
	for _, field := range t.schema.Fields {
		value := t.values[field.Name]
		switch typed := value.(type) {
		case *Tree:
			out[field.Name] = typed.Map()
		case schema.Member:
			out[field.Name] = typed.Value
		default:
			out[field.Name] = copyValue(typed)
		}
	}
	return out
}

// Decode materialises the tree into a typed configuration struct using the
// same `bdfr` tags the schema was built from. Null values leave the target
// field at its zero value.
func (t *Tree) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "bdfr",
		Result:     out,
		ZeroFields: true,
	})
	if err != nil {
		return fmt.Errorf("tree: decoder: %w", err)
	}
	if err := decoder.Decode(t.Map()); err != nil {
		return fmt.Errorf("tree: decode: %w", err)
	}
	return nil
}

func normalize(value any) any {
	switch typed := value.(type) {
	case int:
		return int64(typed)
	case int32:
		return int64(typed)
	case float32:
		return float64(typed)
	case []string:
		if len(typed) == 0 {
			return nil
		}
	}
	return value
}

func copyValue(value any) any {
	if items, ok := value.([]string); ok {
		return slices.Clone(items)
	}
	return value
}

func equalValue(a, b any) bool {
	al, aok := a.([]string)
	bl, bok := b.([]string)
	if aok || bok {
		return aok == bok && slices.Equal(al, bl)
	}
	return a == b
}
