// Package editing layers a non-destructive editing model over an immutable
// layout result. Cells are never deleted: visibility flags and mask reference
// lists change instead, so every edit stays reversible. One Editor owns the
// mutable state of one project and serializes access with a mutex; each
// state-changing call is all-or-nothing and records exactly one history
// delta.
package editing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/TilePlan/internal/history"
	"github.com/piwi3910/TilePlan/internal/layout"
)

// ErrUnknownTarget reports a cell or shape id that does not exist. The failed
// lookup happens before any mutation, so the call leaves no trace.
var ErrUnknownTarget = errors.New("unknown target id")

// Editor owns the editing state of one project: the cell arena (layout cells
// plus split children), the drawn shapes, and the command history.
type Editor struct {
	mu sync.Mutex

	result *layout.Result
	cells  map[string]*layout.Cell
	order  []string // arena iteration order: matrix row-major, then split children
	shapes map[string]*Shape
	hist   *history.History
}

// NewEditor wraps a layout result for editing. maxHistory bounds the undo
// stack; pass 0 for the default.
func NewEditor(res *layout.Result, maxHistory int) *Editor {
	e := &Editor{
		result: res,
		cells:  make(map[string]*layout.Cell),
		shapes: make(map[string]*Shape),
		hist:   history.New(maxHistory),
	}
	for i := range res.Cells {
		for j := range res.Cells[i] {
			c := &res.Cells[i][j]
			e.cells[c.ID] = c
			e.order = append(e.order, c.ID)
		}
	}
	return e
}

// Cell returns a copy of the cell with the given id.
func (e *Editor) Cell(id string) (layout.Cell, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cells[id]
	if !ok {
		return layout.Cell{}, fmt.Errorf("cell %q: %w", id, ErrUnknownTarget)
	}
	return *c, nil
}

// VisibleCells returns copies of all currently visible cells in arena order.
func (e *Editor) VisibleCells() []layout.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []layout.Cell
	for _, id := range e.order {
		c := e.cells[id]
		if !c.Hidden() {
			out = append(out, *c)
		}
	}
	return out
}

// Shapes returns copies of all active shapes.
func (e *Editor) Shapes() []Shape {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []Shape
	for _, s := range e.shapes {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out
}

// SetVisibility toggles a cell's explicit visibility flag and returns the
// affected cell id.
func (e *Editor) SetVisibility(id string, visible bool) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cells[id]
	if !ok {
		return nil, fmt.Errorf("cell %q: %w", id, ErrUnknownTarget)
	}
	prev := c.Visible
	c.Visible = visible
	e.hist.Record(history.Command{
		Type:      history.TypeVisibility,
		TargetID:  id,
		Prev:      prev,
		Next:      visible,
		Timestamp: time.Now(),
	})
	return []string{id}, nil
}

// SetLock toggles a cell's lock flag and returns the affected cell id.
func (e *Editor) SetLock(id string, locked bool) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cells[id]
	if !ok {
		return nil, fmt.Errorf("cell %q: %w", id, ErrUnknownTarget)
	}
	prev := c.Locked
	c.Locked = locked
	e.hist.Record(history.Command{
		Type:      history.TypeLock,
		TargetID:  id,
		Prev:      prev,
		Next:      locked,
		Timestamp: time.Now(),
	})
	return []string{id}, nil
}

// ApplyShape adds a mask shape, hides every cell it covers, and returns the
// new shape id plus the ordered list of affected cell ids. A cell masked by
// several shapes stays hidden until the last one is removed.
func (e *Editor) ApplyShape(s Shape) (string, []string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s.ID = uuid.New().String()[:8]
	s.Active = true
	s.AffectedCells = nil
	for _, id := range e.order {
		if s.covers(e.cells[id]) {
			s.AffectedCells = append(s.AffectedCells, id)
		}
	}

	for _, id := range s.AffectedCells {
		addMask(e.cells[id], s.ID)
	}
	stored := s
	e.shapes[s.ID] = &stored

	delta := history.MaskDelta{ShapeID: s.ID, CellIDs: s.AffectedCells}
	e.hist.Record(history.Command{
		Type:      history.TypeMask,
		TargetID:  s.ID,
		Prev:      delta,
		Next:      history.MaskDelta{ShapeID: s.ID, CellIDs: s.AffectedCells, Applied: true},
		Timestamp: time.Now(),
	})
	return s.ID, append([]string(nil), s.AffectedCells...), nil
}

// RemoveShape deactivates a shape and drops its id from every cell it
// masked. Cells still covered by another shape remain hidden.
func (e *Editor) RemoveShape(id string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.shapes[id]
	if !ok || !s.Active {
		return nil, fmt.Errorf("shape %q: %w", id, ErrUnknownTarget)
	}
	// Verify every affected cell before mutating anything.
	for _, cid := range s.AffectedCells {
		if _, ok := e.cells[cid]; !ok {
			return nil, fmt.Errorf("shape %q cell %q: %w", id, cid, ErrUnknownTarget)
		}
	}

	for _, cid := range s.AffectedCells {
		removeMask(e.cells[cid], id)
	}
	s.Active = false

	e.hist.Record(history.Command{
		Type:      history.TypeMask,
		TargetID:  id,
		Prev:      history.MaskDelta{ShapeID: id, CellIDs: s.AffectedCells, Applied: true},
		Next:      history.MaskDelta{ShapeID: id, CellIDs: s.AffectedCells},
		Timestamp: time.Now(),
	})
	return append([]string(nil), s.AffectedCells...), nil
}

// Split subdivides a cell in the given proportions. The parent is hidden but
// kept; the children join the arena. Returns the parent id followed by the
// child ids.
func (e *Editor) Split(cellID string, dir layout.SplitDirection, ratio []int) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	parent, ok := e.cells[cellID]
	if !ok {
		return nil, fmt.Errorf("cell %q: %w", cellID, ErrUnknownTarget)
	}
	children, err := layout.Split(parent, dir, ratio)
	if err != nil {
		return nil, err
	}

	affected := []string{parent.ID}
	childIDs := make([]string, 0, len(children))
	for i := range children {
		c := children[i]
		e.cells[c.ID] = &c
		e.order = append(e.order, c.ID)
		childIDs = append(childIDs, c.ID)
		affected = append(affected, c.ID)
	}

	delta := history.SplitDelta{ParentID: parent.ID, ChildIDs: childIDs}
	e.hist.Record(history.Command{
		Type:      history.TypeSplit,
		TargetID:  parent.ID,
		Prev:      delta,
		Next:      history.SplitDelta{ParentID: parent.ID, ChildIDs: childIDs, Applied: true},
		Timestamp: time.Now(),
	})
	return affected, nil
}

// CanUndo reports whether an undo is available.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanUndo()
}

// CanRedo reports whether a redo is available.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanRedo()
}

// Undo reverts the most recent edit and returns the ids that changed.
func (e *Editor) Undo() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cmd, err := e.hist.Undo()
	if err != nil {
		return nil, err
	}
	return e.apply(cmd.Type, cmd.TargetID, cmd.Prev), nil
}

// Redo reapplies the most recently undone edit and returns the ids that
// changed.
func (e *Editor) Redo() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cmd, err := e.hist.Redo()
	if err != nil {
		return nil, err
	}
	return e.apply(cmd.Type, cmd.TargetID, cmd.Next), nil
}

// apply writes one command value back onto the arena. The command kind set is
// closed, so the switch is exhaustive by construction.
func (e *Editor) apply(t history.Type, target string, value any) []string {
	switch t {
	case history.TypeVisibility:
		if c, ok := e.cells[target]; ok {
			c.Visible = value.(bool)
		}
		return []string{target}

	case history.TypeLock:
		if c, ok := e.cells[target]; ok {
			c.Locked = value.(bool)
		}
		return []string{target}

	case history.TypeMask:
		d := value.(history.MaskDelta)
		s := e.shapes[d.ShapeID]
		for _, cid := range d.CellIDs {
			c, ok := e.cells[cid]
			if !ok {
				continue
			}
			if d.Applied {
				addMask(c, d.ShapeID)
			} else {
				removeMask(c, d.ShapeID)
			}
		}
		if s != nil {
			s.Active = d.Applied
		}
		return append([]string{d.ShapeID}, d.CellIDs...)

	case history.TypeSplit:
		d := value.(history.SplitDelta)
		if p, ok := e.cells[d.ParentID]; ok {
			p.Visible = !d.Applied
		}
		for _, cid := range d.ChildIDs {
			if c, ok := e.cells[cid]; ok {
				c.Visible = d.Applied
			}
		}
		return append([]string{d.ParentID}, d.ChildIDs...)
	}
	return nil
}

// addMask appends a shape id to the cell's mask list if not already present.
func addMask(c *layout.Cell, shapeID string) {
	for _, id := range c.MaskedBy {
		if id == shapeID {
			return
		}
	}
	c.MaskedBy = append(c.MaskedBy, shapeID)
}

// removeMask drops a shape id from the cell's mask list.
func removeMask(c *layout.Cell, shapeID string) {
	out := c.MaskedBy[:0]
	for _, id := range c.MaskedBy {
		if id != shapeID {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		c.MaskedBy = nil
	} else {
		c.MaskedBy = out
	}
}
