// Package session wires one configuration tree, its binding registry and the
// command preview into a form session. Each session owns its tree; nothing
// here is process-wide.
package session

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-bdfrgen/pkg/binding"
	"github.com/goliatone/go-bdfrgen/pkg/cmdline"
	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/logging"
	"github.com/goliatone/go-bdfrgen/pkg/profile"
	"github.com/goliatone/go-bdfrgen/pkg/redditurl"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

// Placeholders shown in numeric slots without a suggestion document.
const (
	IntPlaceholder   = "e.g. 123"
	FloatPlaceholder = "e.g. 1.0"
)

var errSchemaRequired = errors.New("session: schema is required")

// SlotFactory creates the slot for a field when binding a whole schema.
type SlotFactory func(path string, field schema.Field) binding.Slot

// PreviewListener receives the recomputed preview after every change.
type PreviewListener func(preview string)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTree starts the session from an existing tree instead of defaults. The
// session takes ownership of the tree.
func WithTree(t *tree.Tree) Option {
	return func(s *Session) {
		if t != nil {
			s.tree = t
		}
	}
}

// WithPreviewListener registers a listener for preview updates.
func WithPreviewListener(fn PreviewListener) Option {
	return func(s *Session) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// WithCommandPrefix sets the downloader invocation prepended to the preview
// (for example "python3 -m bdfr download").
func WithCommandPrefix(prefix string) Option {
	return func(s *Session) {
		s.prefix = prefix
	}
}

// Session is a single form editing session.
type Session struct {
	schema    *schema.Schema
	tree      *tree.Tree
	registry  *binding.Registry
	logger    logging.Logger
	listeners []PreviewListener
	prefix    string
	preview   string
}

// New starts a session over s with every field at its default.
func New(s *schema.Schema, opts ...Option) (*Session, error) {
	if s == nil {
		return nil, errSchemaRequired
	}
	sess := &Session{
		schema: s,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(sess)
		}
	}
	if sess.tree == nil {
		sess.tree = tree.Defaults(s)
	}
	if sess.tree.Schema() != s {
		return nil, fmt.Errorf("session: tree conforms to schema %q, not %q", sess.tree.Schema().Name, s.Name)
	}
	sess.registry = binding.NewRegistry(sess.tree,
		binding.WithLogger(sess.logger),
		binding.WithChangeHook(sess.onChange),
	)
	sess.refresh()
	return sess, nil
}

// Schema returns the session schema.
func (s *Session) Schema() *schema.Schema { return s.schema }

// Tree returns the session's tree. Callers must not mutate it directly; all
// changes go through bindings.
func (s *Session) Tree() *tree.Tree { return s.tree }

// Registry exposes the binding registry.
func (s *Session) Registry() *binding.Registry { return s.registry }

// Bind binds one field path to a slot.
func (s *Session) Bind(path string, slot binding.Slot) (*binding.Binding, error) {
	return s.registry.Bind(path, slot)
}

// BindAll binds every leaf field of the schema using factory. A nil factory
// binds in-memory slots with the field's placeholder.
func (s *Session) BindAll(factory SlotFactory) error {
	if factory == nil {
		factory = MemorySlots
	}
	return s.schema.Walk(func(path string, field schema.Field) error {
		if field.Kind == schema.KindNested {
			return nil
		}
		_, err := s.registry.Bind(path, factory(path, field))
		return err
	})
}

// MemorySlots is the default SlotFactory.
func MemorySlots(_ string, field schema.Field) binding.Slot {
	return binding.NewMemorySlot(Placeholder(field))
}

// Placeholder returns the suggestion text a slot for field should show.
func Placeholder(field schema.Field) string {
	if field.Metadata.Suggestion != "" {
		return field.Metadata.Suggestion
	}
	switch field.Kind {
	case schema.KindInt:
		return IntPlaceholder
	case schema.KindFloat:
		return FloatPlaceholder
	default:
		return ""
	}
}

// Edit delivers a raw-text change event for path, as a slot would.
func (s *Session) Edit(path, raw string) error {
	return s.registry.Edit(path, raw)
}

// Write sets the text of a bound slot programmatically and propagates it.
func (s *Session) Write(path, text string) error {
	b, ok := s.registry.Binding(path)
	if !ok {
		return fmt.Errorf("%w: %s", binding.ErrNotBound, path)
	}
	return b.Write(text)
}

// AddURL classifies a Reddit URL and appends its identifier to the matching
// multi-valued field, going through the same propagation path as a manual
// edit. Nothing is mutated when classification fails.
func (s *Session) AddURL(raw string) (redditurl.Ref, error) {
	ref, err := redditurl.Parse(raw)
	if err != nil {
		return redditurl.Ref{}, err
	}
	path := ref.Category.Field()
	b, ok := s.registry.Binding(path)
	if !ok {
		return redditurl.Ref{}, fmt.Errorf("%w: %s", binding.ErrNotBound, path)
	}

	current := b.Slot().Text()
	if b.Slot().ShowingPlaceholder() {
		current = ""
	}
	if value, err := b.Value(); err == nil && value == nil {
		current = ""
	}
	if err := b.Write(redditurl.AppendText(current, ref.Identifier)); err != nil {
		return redditurl.Ref{}, err
	}
	s.logger.Info("added url", "category", ref.Category, "identifier", ref.Identifier, "field", path)
	return ref, nil
}

// ApplyProfile writes every profile value through its binding. Values are
// validated before anything is written, so a bad profile leaves the tree
// untouched.
func (s *Session) ApplyProfile(p profile.Profile) error {
	paths := p.Paths()
	bindings := make([]*binding.Binding, 0, len(paths))
	for _, path := range paths {
		b, ok := s.registry.Binding(path)
		if !ok {
			return fmt.Errorf("session: profile %q: %w: %s", p.Name, binding.ErrNotBound, path)
		}
		if _, err := coerce.Parse(b.Field(), p.Values[path]); err != nil {
			return fmt.Errorf("session: profile %q: %w", p.Name, err)
		}
		bindings = append(bindings, b)
	}
	for i, b := range bindings {
		if err := b.Write(p.Values[paths[i]]); err != nil {
			return err
		}
	}
	return nil
}

// Profile captures the session's non-default values.
func (s *Session) Profile(name string) (profile.Profile, error) {
	return profile.FromTree(name, s.tree)
}

// Preview returns the last computed command preview.
func (s *Session) Preview() string { return s.preview }

// Arguments returns the space-joined argument string without prefix or
// quoting.
func (s *Session) Arguments() string { return cmdline.Serialize(s.tree) }

// Args returns argv-style tokens for a process launcher.
func (s *Session) Args() []string { return cmdline.Tokens(s.tree) }

// Close tears the form down. The tree is left as it was.
func (s *Session) Close() {
	s.registry.Close()
}

func (s *Session) onChange(path string) {
	s.logger.Debug("field changed", "path", path)
	s.refresh()
}

// refresh recomputes the preview. The preview is read-only and unbound, so
// publishing it can never raise another edit.
func (s *Session) refresh() {
	s.preview = cmdline.Preview(s.prefix, s.tree)
	for _, listener := range s.listeners {
		listener(s.preview)
	}
}
