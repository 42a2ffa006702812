package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoGroups is returned when the form holds no named checkboxes.
	ErrNoGroups = errors.New("prompt: form has no checkbox groups")
)
