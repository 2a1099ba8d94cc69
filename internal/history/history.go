// Package history keeps a bounded undo/redo ledger of editing deltas. Each
// entry is a minimal before/after record, never a full-state snapshot, so the
// memory held by history is independent of grid size.
package history

import (
	"errors"
	"time"
)

// Type identifies the kind of delta a Command carries. The set is closed;
// appliers match it exhaustively.
type Type string

const (
	TypeVisibility Type = "visibility" // Prev/Next: bool
	TypeLock       Type = "lock"       // Prev/Next: bool
	TypeMask       Type = "mask"       // Prev/Next: MaskDelta
	TypeSplit      Type = "split"      // Prev/Next: SplitDelta
)

// MaskDelta records a shape being applied to or removed from a set of cells.
type MaskDelta struct {
	ShapeID string   `json:"shape_id"`
	CellIDs []string `json:"cell_ids"`
	Applied bool     `json:"applied"`
}

// SplitDelta records a cell being subdivided. Applied distinguishes the
// post-split state (Next) from the pre-split state (Prev).
type SplitDelta struct {
	ParentID string   `json:"parent_id"`
	ChildIDs []string `json:"child_ids"`
	Applied  bool     `json:"applied"`
}

// Command is one reversible editing delta. Prev holds the value to restore on
// undo, Next the value to reapply on redo.
type Command struct {
	Type      Type      `json:"type"`
	TargetID  string    `json:"target_id"`
	Prev      any       `json:"prev"`
	Next      any       `json:"next"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrEmptyHistory reports an undo or redo on an empty stack.
var ErrEmptyHistory = errors.New("history is empty")

// DefaultMaxSize bounds the undo stack unless the caller chooses otherwise.
const DefaultMaxSize = 50

// History holds bounded undo and redo stacks. It is a pure ledger: callers
// apply the returned commands themselves.
type History struct {
	undo    []Command
	redo    []Command
	maxSize int
}

// New creates a History bounded to maxSize entries. A non-positive maxSize
// falls back to DefaultMaxSize.
func New(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History{maxSize: maxSize}
}

// Record pushes cmd onto the undo stack and clears the redo stack; a new
// action always invalidates redo. The oldest entry is discarded once the
// stack exceeds its bound.
func (h *History) Record(cmd Command) {
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.maxSize {
		h.undo = h.undo[len(h.undo)-h.maxSize:]
	}
	h.redo = nil
}

// Undo pops the most recent command and moves it to the redo stack. The
// caller must apply the command's Prev value. Returns ErrEmptyHistory when
// nothing can be undone.
func (h *History) Undo() (Command, error) {
	if len(h.undo) == 0 {
		return Command{}, ErrEmptyHistory
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return cmd, nil
}

// Redo pops the most recent undone command and moves it back to the undo
// stack. The caller must apply the command's Next value. Returns
// ErrEmptyHistory when nothing can be redone.
func (h *History) Redo() (Command, error) {
	if len(h.redo) == 0 {
		return Command{}, ErrEmptyHistory
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return cmd, nil
}

// CanUndo reports whether at least one command can be undone. Callers should
// use this, not a failing Undo, to probe availability.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether at least one command can be redone.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoDepth returns the current undo stack size.
func (h *History) UndoDepth() int {
	return len(h.undo)
}

// Clear removes all history.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
