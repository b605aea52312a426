package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrSessionRequired is returned when an editor is built without a session.
	ErrSessionRequired = errors.New("prompt: session is required")
)
