package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrUnsupportedFieldType marks a declared field whose Go type matches no
	// entry of the classification table. The field is omitted from the schema.
	ErrUnsupportedFieldType = errors.New("schema: unsupported field type")
	// ErrInvalidDefault marks a field whose prototype value cannot serve as a
	// default (for example an enum value that is not a declared member).
	ErrInvalidDefault = errors.New("schema: invalid default value")
	// ErrInvalidFlag marks a malformed flag tag.
	ErrInvalidFlag = errors.New("schema: invalid flag tag")

	errPrototypeNil       = errors.New("schema: prototype is nil")
	errPrototypeNotStruct = errors.New("schema: prototype must be a struct")
)

const (
	nameTag = "bdfr"
	flagTag = "flag"

	repeatOption = "repeat"
)

var enumInterface = reflect.TypeOf((*Enum)(nil)).Elem()

// Diagnostic records a declared field that could not be catalogued. Building
// continues; the field is left out of the resulting schema.
type Diagnostic struct {
	Path   string
	GoType string
	Err    error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s (%s): %v", d.Path, d.GoType, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// MetadataSource supplies per-field presentation metadata keyed by field name.
type MetadataSource interface {
	MetadataFor(name string) Metadata
}

// Option configures Build.
type Option func(*options)

type options struct {
	name     string
	labeler  func(string) string
	metadata MetadataSource
}

// WithName overrides the root schema name (defaults to the Go type name).
func WithName(name string) Option {
	return func(o *options) {
		o.name = strings.TrimSpace(name)
	}
}

// WithLabeler overrides the label derivation.
func WithLabeler(fn func(string) string) Option {
	return func(o *options) {
		if fn != nil {
			o.labeler = fn
		}
	}
}

// WithMetadata attaches metadata to every field from the supplied source.
func WithMetadata(src MetadataSource) Option {
	return func(o *options) {
		o.metadata = src
	}
}

// Build reflects a struct prototype into a Schema. Field order follows the
// struct declaration; defaults are taken from the prototype's values.
//
// Struct tags:
//
//	bdfr:"max_wait_time"   field name ("-" skips the field)
//	flag:"--max-wait-time" long flag, derived from the name when absent
//	flag:"-v,repeat"       repeat flag emitted once per level
//
// Unsupported field types are reported as diagnostics rather than failing the
// whole build.
func Build(prototype any, opts ...Option) (*Schema, []Diagnostic, error) {
	cfg := options{labeler: DefaultLabeler}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if prototype == nil {
		return nil, nil, errPrototypeNil
	}
	value := reflect.ValueOf(prototype)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, errPrototypeNil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("%w, got %s", errPrototypeNotStruct, value.Type())
	}

	name := cfg.name
	if name == "" {
		name = value.Type().Name()
	}

	b := &builder{opts: cfg}
	s := b.buildStruct(name, "", value)
	return s, b.diagnostics, nil
}

type builder struct {
	opts        options
	diagnostics []Diagnostic
}

func (b *builder) buildStruct(name, prefix string, value reflect.Value) *Schema {
	typ := value.Type()
	fields := make([]Field, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		fieldName, skip := fieldNameOf(sf)
		if skip {
			continue
		}
		path := JoinPath(prefix, fieldName)

		field, err := b.buildField(fieldName, path, sf, value.Field(i))
		if err != nil {
			b.diagnostics = append(b.diagnostics, Diagnostic{
				Path:   path,
				GoType: sf.Type.String(),
				Err:    err,
			})
			continue
		}
		fields = append(fields, field)
	}
	return newSchema(name, fields)
}

func (b *builder) buildField(name, path string, sf reflect.StructField, value reflect.Value) (Field, error) {
	kind, ok := classify(sf.Type)
	if !ok {
		return Field{}, ErrUnsupportedFieldType
	}

	field := Field{
		Name:   name,
		Label:  b.opts.labeler(name),
		Kind:   kind,
		GoType: sf.Type.String(),
	}
	if b.opts.metadata != nil {
		field.Metadata = b.opts.metadata.MetadataFor(name)
	}

	if kind == KindNested {
		field.Schema = b.buildStruct(sf.Type.Name(), path, value)
		return field, nil
	}

	flag, err := flagOf(sf, name)
	if err != nil {
		return Field{}, err
	}
	if flag.Repeat && kind != KindInt {
		return Field{}, fmt.Errorf("%w: repeat is only valid on int fields, got %s", ErrInvalidFlag, kind)
	}
	field.Flag = flag

	if kind == KindEnum {
		field.Members = enumMembers(sf.Type)
	}

	def, err := defaultOf(field, value)
	if err != nil {
		return Field{}, err
	}
	field.Default = def
	return field, nil
}

func fieldNameOf(sf reflect.StructField) (string, bool) {
	tag, ok := sf.Tag.Lookup(nameTag)
	if !ok {
		return toSnake(sf.Name), false
	}
	tag = strings.TrimSpace(strings.Split(tag, ",")[0])
	if tag == "-" {
		return "", true
	}
	if tag == "" {
		return toSnake(sf.Name), false
	}
	return tag, false
}

func flagOf(sf reflect.StructField, name string) (Flag, error) {
	tag, ok := sf.Tag.Lookup(flagTag)
	if !ok || strings.TrimSpace(tag) == "" {
		return Flag{Name: "--" + strings.ReplaceAll(name, "_", "-")}, nil
	}
	parts := strings.Split(tag, ",")
	flag := Flag{Name: strings.TrimSpace(parts[0])}
	if !strings.HasPrefix(flag.Name, "-") {
		return Flag{}, fmt.Errorf("%w: %q must start with '-'", ErrInvalidFlag, flag.Name)
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == repeatOption {
			flag.Repeat = true
		}
	}
	return flag, nil
}

// classify is the fixed classification table from Go types to field kinds.
func classify(t reflect.Type) (Kind, bool) {
	if t.Kind() == reflect.String && t.Implements(enumInterface) {
		return KindEnum, true
	}
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	switch base.Kind() {
	case reflect.Bool:
		if t.Kind() == reflect.Pointer {
			return "", false
		}
		return KindBool, true
	case reflect.String:
		if base.Implements(enumInterface) {
			return "", false
		}
		return KindString, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, true
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.Slice:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String && !t.Elem().Implements(enumInterface) {
			return KindStringList, true
		}
	case reflect.Struct:
		if t.Kind() == reflect.Struct && hasExportedFields(t) {
			return KindNested, true
		}
	}
	return "", false
}

func hasExportedFields(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}

func enumMembers(t reflect.Type) []Member {
	enum, ok := reflect.Zero(t).Interface().(Enum)
	if !ok {
		return nil
	}
	return append([]Member(nil), enum.EnumMembers()...)
}

func defaultOf(field Field, value reflect.Value) (any, error) {
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			if field.Kind == KindString {
				return "", nil
			}
			return nil, nil
		}
		value = value.Elem()
	}

	switch field.Kind {
	case KindBool:
		return value.Bool(), nil
	case KindInt:
		n := value.Int()
		if err := field.Accepts(n); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDefault, err)
		}
		return n, nil
	case KindFloat:
		return value.Float(), nil
	case KindString:
		return value.String(), nil
	case KindStringList:
		if value.Len() == 0 {
			return nil, nil
		}
		items := make([]string, value.Len())
		for i := range items {
			items[i] = value.Index(i).String()
		}
		if err := field.Accepts(items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDefault, err)
		}
		return items, nil
	case KindEnum:
		wire := value.String()
		member, ok := field.MemberByValue(wire)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a member of %s", ErrInvalidDefault, wire, field.GoType)
		}
		return member, nil
	}
	return nil, nil
}

func toSnake(name string) string {
	var out strings.Builder
	for i, r := range name {
		if i > 0 && isUpper(r) && !isUpper(rune(name[i-1])) {
			out.WriteByte('_')
		}
		out.WriteRune(r)
	}
	return strings.ToLower(out.String())
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
