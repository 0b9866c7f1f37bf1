package reconcile

import "github.com/KirkDiggler/codearena/internal/regions"

// Widget is the local editor surface
type Widget interface {
	// SetText replaces the editor contents. Implementations may report the
	// resulting change back through HandleLocalChange synchronously.
	SetText(text string)
}

// Replica is the shared CRDT buffer
type Replica interface {
	Text() string

	// Replace deletes the whole buffer and inserts text
	Replace(text string)
}

// Saver debounces persistence of accepted local edits
type Saver interface {
	Schedule(text string)

	// Pending reports an unsaved local change
	Pending() bool
}

// Authorizer decides whether an editor may make a change
type Authorizer interface {
	Authorize(editorID, oldText, newText string) regions.Decision

	// SetText recomputes region spans for the current buffer
	SetText(text string)
}
