package binding

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
	"github.com/goliatone/go-bdfrgen/pkg/tree"
)

type downloads struct {
	MaxWaitTime int `bdfr:"max_wait_time"`
}

type input struct {
	Limit     *int      `bdfr:"limit"`
	NoDupes   bool      `bdfr:"no_dupes"`
	Subreddit []string  `bdfr:"subreddit"`
	Download  downloads `bdfr:"download_config"`
}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	s, _, err := schema.Build(input{Download: downloads{MaxWaitTime: 120}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return NewRegistry(tree.Defaults(s), opts...)
}

func TestBind_InitialLoad(t *testing.T) {
	r := newTestRegistry(t)

	slot := NewMemorySlot("e.g. 120")
	if _, err := r.Bind("download_config.max_wait_time", slot); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if slot.Text() != "120" || slot.ShowingPlaceholder() {
		t.Fatalf("slot must start with the tree value, got %q (placeholder %v)", slot.Text(), slot.ShowingPlaceholder())
	}

	empty := NewMemorySlot("e.g. 123")
	if _, err := r.Bind("limit", empty); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !empty.ShowingPlaceholder() || empty.Display() != "e.g. 123" {
		t.Fatalf("null value must leave the placeholder visible")
	}
}

func TestBind_Errors(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Bind("limit", NewMemorySlot("")); err != nil {
		t.Fatalf("bind: %v", err)
	}

	if _, err := r.Bind("limit", NewMemorySlot("")); !errors.Is(err, ErrDuplicateBinding) {
		t.Fatalf("expected ErrDuplicateBinding, got %v", err)
	}
	if _, err := r.Bind("nope", NewMemorySlot("")); !errors.Is(err, tree.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := r.Bind("download_config", NewMemorySlot("")); !errors.Is(err, ErrNestedField) {
		t.Fatalf("expected ErrNestedField, got %v", err)
	}
	if err := r.Edit("no_dupes", "true"); !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}

	r.Unbind("limit")
	if _, err := r.Bind("limit", NewMemorySlot("")); err != nil {
		t.Fatalf("rebind after unbind: %v", err)
	}

	r.Close()
	if _, err := r.Bind("no_dupes", NewMemorySlot("")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if len(r.Paths()) != 0 {
		t.Fatalf("close must drop every binding")
	}
}

func TestEdit_Propagates(t *testing.T) {
	var changed []string
	r := newTestRegistry(t, WithChangeHook(func(path string) { changed = append(changed, path) }))

	slot := NewMemorySlot("")
	b, err := r.Bind("subreddit", slot)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	slot.SetText("pics\nEarthPorn")
	if err := b.Edit(slot.Text()); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got, _ := r.Tree().Get("subreddit")
	if diff := cmp.Diff([]string{"pics", "EarthPorn"}, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"subreddit"}, changed); diff != "" {
		t.Fatalf("hook calls mismatch (-want +got):\n%s", diff)
	}
}

func TestEdit_IgnoredWhilePlaceholderShows(t *testing.T) {
	calls := 0
	r := newTestRegistry(t, WithChangeHook(func(string) { calls++ }))

	slot := NewMemorySlot("e.g. 123")
	if _, err := r.Bind("limit", slot); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := r.Edit("limit", "e.g. 123"); err != nil {
		t.Fatalf("placeholder edit must be ignored, got %v", err)
	}
	if got, _ := r.Tree().Get("limit"); got != nil {
		t.Fatalf("placeholder text must not reach the tree, got %v", got)
	}
	if calls != 0 {
		t.Fatalf("ignored edits must not run hooks")
	}

	slot.Focus()
	slot.SetText("15")
	if err := r.Edit("limit", "15"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got, _ := r.Tree().Get("limit"); got != int64(15) {
		t.Fatalf("limit = %v, want 15", got)
	}
}

func TestEdit_ParseFailureLeavesTreeUnchanged(t *testing.T) {
	calls := 0
	r := newTestRegistry(t, WithChangeHook(func(string) { calls++ }))
	if _, err := r.Bind("download_config.max_wait_time", NewMemorySlot("")); err != nil {
		t.Fatalf("bind: %v", err)
	}
	before := r.Tree().Clone()

	err := r.Edit("download_config.max_wait_time", "12a")
	if !errors.Is(err, coerce.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if !tree.Equal(before, r.Tree()) {
		t.Fatalf("tree changed after a rejected edit")
	}
	if calls != 0 {
		t.Fatalf("rejected edits must not run hooks")
	}
}

func TestHook_CannotReenter(t *testing.T) {
	var r *Registry
	var hookErr error
	r = newTestRegistry(t, WithChangeHook(func(path string) {
		if path == "no_dupes" {
			hookErr = r.Edit("limit", "5")
		}
	}))
	if _, err := r.Bind("no_dupes", NewMemorySlot("")); err != nil {
		t.Fatalf("bind: %v", err)
	}
	limit, err := r.Bind("limit", NewMemorySlot(""))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	if err := r.Edit("no_dupes", "True"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !errors.Is(hookErr, ErrReentrantEdit) {
		t.Fatalf("expected ErrReentrantEdit from hook, got %v", hookErr)
	}
	if got, _ := r.Tree().Get("limit"); got != nil {
		t.Fatalf("re-entrant edit must not reach the tree, got %v", got)
	}

	// outside the hook the same edit goes through
	if err := limit.Write("5"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, _ := r.Tree().Get("limit"); got != int64(5) {
		t.Fatalf("limit = %v, want 5", got)
	}
}

func TestWrite(t *testing.T) {
	r := newTestRegistry(t)
	slot := NewMemorySlot("e.g. 123")
	b, err := r.Bind("limit", slot)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	if err := b.Write("abc"); !errors.Is(err, coerce.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if !slot.ShowingPlaceholder() {
		t.Fatalf("rejected writes must not touch the slot")
	}

	if err := b.Write("42"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if slot.Text() != "42" || slot.ShowingPlaceholder() {
		t.Fatalf("slot text = %q (placeholder %v)", slot.Text(), slot.ShowingPlaceholder())
	}
	if v, _ := b.Value(); v != int64(42) {
		t.Fatalf("value = %v, want 42", v)
	}

	if err := b.Write(""); err != nil {
		t.Fatalf("clearing: %v", err)
	}
	if v, _ := b.Value(); v != nil {
		t.Fatalf("cleared int must be null, got %v", v)
	}
}

func TestValidate(t *testing.T) {
	r := newTestRegistry(t)
	slot := NewMemorySlot("e.g. 123")
	b, err := r.Bind("limit", slot)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !b.Validate("anything") {
		t.Fatalf("placeholder slots accept any text")
	}
	slot.Focus()
	if b.Validate("1x") {
		t.Fatalf("int slot must reject letters")
	}
	if !b.Validate("12") {
		t.Fatalf("int slot must accept digits")
	}
}

func TestMemorySlot(t *testing.T) {
	slot := NewMemorySlot("e.g. 1.0")
	if !slot.ShowingPlaceholder() || slot.Text() != "" || slot.Placeholder() != "e.g. 1.0" {
		t.Fatalf("new slot must show its placeholder")
	}
	slot.Focus()
	if slot.ShowingPlaceholder() || slot.Display() != "" {
		t.Fatalf("focus must clear the placeholder")
	}
	slot.Blur()
	if !slot.ShowingPlaceholder() {
		t.Fatalf("blurring an empty slot must restore the placeholder")
	}
	slot.SetText("0.5")
	slot.Blur()
	if slot.ShowingPlaceholder() || slot.Text() != "0.5" {
		t.Fatalf("text must hide the placeholder")
	}

	plain := NewMemorySlot("")
	if plain.ShowingPlaceholder() {
		t.Fatalf("slot without a placeholder never shows one")
	}
}
