// Package binding associates each field path of a configuration tree with
// exactly one editable slot and propagates slot edits into the tree.
package binding

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/logging"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

var (
	// ErrDuplicateBinding is returned when a path is bound twice. It signals a
	// programming error in the presentation layer.
	ErrDuplicateBinding = errors.New("binding: path already bound")
	// ErrNotBound is returned when an operation targets a path without a slot.
	ErrNotBound = errors.New("binding: path not bound")
	// ErrReentrantEdit is returned when a change hook tries to edit the tree
	// while a propagation is still in flight.
	ErrReentrantEdit = errors.New("binding: edit during propagation")
	// ErrNestedField is returned when binding a nested field directly.
	ErrNestedField = errors.New("binding: nested fields are bound field by field")
	// ErrClosed is returned after the registry has been torn down.
	ErrClosed = errors.New("binding: registry closed")
)

// Slot is the external, editable value holder a presentation layer provides
// for one field (an entry box, a text area, a prompt answer).
type Slot interface {
	// Text returns the raw text currently displayed.
	Text() string
	// SetText replaces the displayed text without raising an edit.
	SetText(text string)
	// ShowingPlaceholder reports whether the slot is displaying its
	// suggestion rather than user input.
	ShowingPlaceholder() bool
}

// ChangeHook runs after every successful set. It must not edit the registry.
type ChangeHook func(path string)

// Option configures a Registry.
type Option func(*Registry)

// WithChangeHook registers a hook invoked after every successful set.
func WithChangeHook(hook ChangeHook) Option {
	return func(r *Registry) {
		if hook != nil {
			r.hooks = append(r.hooks, hook)
		}
	}
}

// WithLogger attaches a logger for propagation events.
func WithLogger(logger logging.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry is the single authority mapping field paths to live bindings for
// one tree. It is not safe for concurrent use; a session owns it exclusively.
type Registry struct {
	tree     *tree.Tree
	bindings map[string]*Binding
	hooks    []ChangeHook
	logger   logging.Logger

	propagating bool
	closed      bool
}

// NewRegistry creates an empty registry over the supplied tree.
func NewRegistry(t *tree.Tree, opts ...Option) *Registry {
	r := &Registry{
		tree:     t,
		bindings: make(map[string]*Binding),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Tree returns the tree the registry writes into.
func (r *Registry) Tree() *tree.Tree {
	return r.tree
}

// Bind creates the binding for path and loads the slot's initial text from
// the tree. This is the only tree → slot transfer; later tree changes are
// not pushed back to the slot.
func (r *Registry) Bind(path string, slot Slot) (*Binding, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if slot == nil {
		return nil, fmt.Errorf("binding: %s: slot is nil", path)
	}
	field, err := r.tree.Field(path)
	if err != nil {
		return nil, err
	}
	if field.Kind == schema.KindNested {
		return nil, fmt.Errorf("%w: %s", ErrNestedField, path)
	}
	if _, exists := r.bindings[path]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateBinding, path)
	}

	value, err := r.tree.Get(path)
	if err != nil {
		return nil, err
	}
	text, err := coerce.Format(field, value)
	if err != nil {
		return nil, err
	}
	slot.SetText(text)

	b := &Binding{path: path, field: field, slot: slot, registry: r}
	r.bindings[path] = b
	r.logger.Debug("bound field", "path", path, "kind", field.Kind)
	return b, nil
}

// Binding returns the live binding for path.
func (r *Registry) Binding(path string) (*Binding, bool) {
	b, ok := r.bindings[path]
	return b, ok
}

// Edit forwards a raw text change to the binding at path.
func (r *Registry) Edit(path, raw string) error {
	b, ok := r.bindings[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotBound, path)
	}
	return b.Edit(raw)
}

// Unbind destroys the binding at path so the path can be bound again.
func (r *Registry) Unbind(path string) {
	if b, ok := r.bindings[path]; ok {
		b.registry = nil
		delete(r.bindings, path)
	}
}

// Close tears down every binding. Further binds fail with ErrClosed.
func (r *Registry) Close() {
	for path := range r.bindings {
		r.Unbind(path)
	}
	r.closed = true
}

// Paths lists bound paths in lexical order.
func (r *Registry) Paths() []string {
	out := make([]string, 0, len(r.bindings))
	for path := range r.bindings {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// propagate parses raw and stores the result. The tree is only touched after
// a successful parse, and hooks run inside the propagation window so any
// attempt to edit from a hook is rejected.
func (r *Registry) propagate(b *Binding, raw string) error {
	if r.propagating {
		return fmt.Errorf("%w: %s", ErrReentrantEdit, b.path)
	}
	value, err := coerce.Parse(b.field, raw)
	if err != nil {
		r.logger.Debug("rejected edit", "path", b.path, "error", err)
		return err
	}

	r.propagating = true
	defer func() { r.propagating = false }()

	if err := r.tree.Set(b.path, value); err != nil {
		return err
	}
	r.logger.Debug("stored value", "path", b.path, "value", value)
	for _, hook := range r.hooks {
		hook(b.path)
	}
	return nil
}
