// internal/event/event.go
package event

import "github.com/coreedit/coreedit/internal/types"

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified   // Fired after a command that changed the buffer size; carries EditInfo.
	TypeBufferLoaded     // Fired after Load fills an empty buffer.
	TypeBufferSaved      // Fired after Save streams the buffer out.
	TypeCursorMoved      // Fired when the cursor position changes.
	TypeSelectionChanged // Fired when markers change (set, cleared, toggled).
	TypeUndoApplied      // Fired after Undo pops and replays an inverse action.
	TypeRedoApplied      // Fired after Redo reapplies a forward action.
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// BufferModifiedData carries the dirty-region delta for a mutation.
type BufferModifiedData struct {
	Edit types.EditInfo
}

// BufferLoadedData carries the path a buffer was filled from.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData carries the path a buffer was streamed to.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData carries the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// SelectionChangedData carries the current (possibly empty) selection.
type SelectionChangedData struct {
	Start, End types.Position
	Active     bool
}
