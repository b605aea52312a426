package schema

import (
	"fmt"
	"strings"
)

// Kind is the semantic type of a configuration field.
type Kind string

const (
	KindBool       Kind = "bool"
	KindInt        Kind = "int"
	KindFloat      Kind = "float"
	KindString     Kind = "string"
	KindStringList Kind = "string_list"
	KindEnum       Kind = "enum"
	KindNested     Kind = "nested"
)

// Nullable reports whether the kind has an empty sentinel distinct from its
// zero value. Numeric and list kinds are nullable; bool and enum are not.
func (k Kind) Nullable() bool {
	switch k {
	case KindInt, KindFloat, KindStringList:
		return true
	default:
		return false
	}
}

// Member is a single enumeration member. Name is the declared identifier
// (for example "HOT"); Value is the wire value handed to the downloader
// ("hot").
type Member struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Enum is implemented by string-kinded Go types that act as enumerations.
// The method is called on the zero value, so it must not depend on the
// receiver.
type Enum interface {
	EnumMembers() []Member
}

// MaxRepeat is the highest level a repeat flag accepts ("-v" written at most
// MaxRepeat times).
const MaxRepeat = 16

// Flag describes how a field is spelled on the command line. Repeat flags
// (for example "-v") are emitted once per level instead of carrying a value.
type Flag struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Repeat bool   `json:"repeat,omitempty" yaml:"repeat,omitempty"`
}

// Metadata carries presentation hints sourced from external field documents.
// Both entries are optional.
type Metadata struct {
	Tooltip    string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Field describes one named, typed slot of a configuration shape. Fields are
// immutable once the schema has been built.
type Field struct {
	Name     string   `json:"name" yaml:"name"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Flag     Flag     `json:"flag,omitempty" yaml:"flag,omitempty"`
	Default  any      `json:"default,omitempty" yaml:"default,omitempty"`
	Members  []Member `json:"members,omitempty" yaml:"members,omitempty"`
	Schema   *Schema  `json:"schema,omitempty" yaml:"schema,omitempty"`
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	GoType   string   `json:"-" yaml:"-"`
}

// Member resolves an enumeration member by declared name.
func (f Field) Member(name string) (Member, bool) {
	for _, member := range f.Members {
		if member.Name == name {
			return member, true
		}
	}
	return Member{}, false
}

// MemberByValue resolves an enumeration member by wire value.
func (f Field) MemberByValue(value string) (Member, bool) {
	for _, member := range f.Members {
		if member.Value == value {
			return member, true
		}
	}
	return Member{}, false
}

// MemberNames lists the declared member names in declaration order.
func (f Field) MemberNames() []string {
	names := make([]string, 0, len(f.Members))
	for _, member := range f.Members {
		names = append(names, member.Name)
	}
	return names
}

// Schema is the ordered declaration of fields for one configuration shape.
type Schema struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`

	index map[string]int
}

func newSchema(name string, fields []Field) *Schema {
	s := &Schema{
		Name:   name,
		Fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for idx, field := range fields {
		s.index[field.Name] = idx
	}
	return s
}

// Field returns the direct child field with the supplied name.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[idx], true
}

// Lookup resolves a dotted field path across nested schemas.
func (s *Schema) Lookup(path string) (Field, bool) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return Field{}, false
	}
	current := s
	var field Field
	for i, segment := range segments {
		var ok bool
		field, ok = current.Field(segment)
		if !ok {
			return Field{}, false
		}
		if i < len(segments)-1 {
			if field.Kind != KindNested {
				return Field{}, false
			}
			current = field.Schema
		}
	}
	return field, true
}

// Walk visits every field depth-first in declaration order. Nested fields are
// visited before their children. Returning an error stops the walk.
func (s *Schema) Walk(fn func(path string, field Field) error) error {
	return s.walk("", fn)
}

func (s *Schema) walk(prefix string, fn func(string, Field) error) error {
	if s == nil {
		return nil
	}
	for _, field := range s.Fields {
		path := JoinPath(prefix, field.Name)
		if err := fn(path, field); err != nil {
			return err
		}
		if field.Kind == KindNested {
			if err := field.Schema.walk(path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Paths returns every leaf (non-nested) field path in declaration order.
func (s *Schema) Paths() []string {
	var out []string
	_ = s.Walk(func(path string, field Field) error {
		if field.Kind != KindNested {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// JoinPath joins a parent path and a child name with a dot.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

// SplitPath splits a dotted path, ignoring empty segments.
func SplitPath(path string) []string {
	parts := strings.Split(strings.TrimSpace(path), ".")
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Accepts reports whether value is a canonical value for the field: the Go
// type matching its kind, or nil for nullable kinds. Nested fields never
// accept a direct value.
func (f Field) Accepts(value any) error {
	if value == nil {
		if f.Kind.Nullable() {
			return nil
		}
		return fmt.Errorf("%s field %q is not nullable", f.Kind, f.Name)
	}
	switch f.Kind {
	case KindBool:
		if _, ok := value.(bool); ok {
			return nil
		}
	case KindInt:
		n, ok := value.(int64)
		if !ok {
			break
		}
		if f.Flag.Repeat && (n < 0 || n > MaxRepeat) {
			return fmt.Errorf("repeat field %q: level %d outside 0..%d", f.Name, n, MaxRepeat)
		}
		return nil
	case KindFloat:
		if _, ok := value.(float64); ok {
			return nil
		}
	case KindString:
		if _, ok := value.(string); ok {
			return nil
		}
	case KindStringList:
		items, ok := value.([]string)
		if !ok {
			break
		}
		for idx, item := range items {
			if item == "" || strings.ContainsAny(item, "\r\n") {
				return fmt.Errorf("list field %q: element %d is empty or spans lines", f.Name, idx)
			}
		}
		return nil
	case KindEnum:
		member, ok := value.(Member)
		if !ok {
			break
		}
		if declared, found := f.Member(member.Name); found && declared == member {
			return nil
		}
		return fmt.Errorf("enum field %q: %q is not a declared member", f.Name, member.Name)
	case KindNested:
		return fmt.Errorf("nested field %q cannot hold a value", f.Name)
	}
	return fmt.Errorf("%s field %q cannot hold %T", f.Kind, f.Name, value)
}
