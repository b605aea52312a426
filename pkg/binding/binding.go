package binding

import (
	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
)

// Binding is the exclusive association between one field path and one slot.
type Binding struct {
	path     string
	field    schema.Field
	slot     Slot
	registry *Registry
}

// Path returns the bound field path.
func (b *Binding) Path() string { return b.path }

// Field returns the bound field descriptor.
func (b *Binding) Field() schema.Field { return b.field }

// Slot returns the bound slot.
func (b *Binding) Slot() Slot { return b.slot }

// Edit handles a raw-text change event from the slot. Events raised while the
// slot shows its placeholder are ignored. A parse failure is returned and the
// tree is left unchanged.
func (b *Binding) Edit(raw string) error {
	if b.registry == nil {
		return ErrNotBound
	}
	if b.slot.ShowingPlaceholder() {
		return nil
	}
	return b.registry.propagate(b, raw)
}

// Write replaces the slot's text programmatically and propagates it. Unlike
// Edit it does not consult the placeholder state, since the text was written
// on purpose.
func (b *Binding) Write(text string) error {
	if b.registry == nil {
		return ErrNotBound
	}
	if b.registry.propagating {
		return ErrReentrantEdit
	}
	if _, err := coerce.Parse(b.field, text); err != nil {
		return err
	}
	b.slot.SetText(text)
	return b.registry.propagate(b, text)
}

// Validate reports whether the slot may take resulting as its new text.
func (b *Binding) Validate(resulting string) bool {
	return coerce.AcceptEdit(b.field, resulting, b.slot.ShowingPlaceholder())
}

// Value returns the tree's current value for the bound path.
func (b *Binding) Value() (any, error) {
	if b.registry == nil {
		return nil, ErrNotBound
	}
	return b.registry.tree.Get(b.path)
}
