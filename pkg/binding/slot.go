package binding

// MemorySlot is an in-memory Slot modelled on an entry box with a
// suggestion: while empty and unfocused it displays the placeholder, focusing
// clears it, and blurring an empty slot brings it back.
type MemorySlot struct {
	text        string
	placeholder string
	showing     bool
}

// NewMemorySlot returns an empty slot showing placeholder, if any.
func NewMemorySlot(placeholder string) *MemorySlot {
	return &MemorySlot{placeholder: placeholder, showing: placeholder != ""}
}

// Text returns the user text; it is empty while the placeholder shows.
func (s *MemorySlot) Text() string {
	if s.showing {
		return ""
	}
	return s.text
}

// Display returns what a user would see, placeholder included.
func (s *MemorySlot) Display() string {
	if s.showing {
		return s.placeholder
	}
	return s.text
}

// Placeholder returns the suggestion text.
func (s *MemorySlot) Placeholder() string {
	return s.placeholder
}

// SetText replaces the slot text. Non-empty text hides the placeholder.
func (s *MemorySlot) SetText(text string) {
	s.text = text
	if text != "" {
		s.showing = false
	}
}

// Focus hides the placeholder so subsequent edits count as input.
func (s *MemorySlot) Focus() {
	s.showing = false
}

// Blur shows the placeholder again when the slot is empty.
func (s *MemorySlot) Blur() {
	if s.text == "" && s.placeholder != "" {
		s.showing = true
	}
}

// ShowingPlaceholder implements Slot.
func (s *MemorySlot) ShowingPlaceholder() bool {
	return s.showing
}
