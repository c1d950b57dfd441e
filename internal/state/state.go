package state

import (
	"github.com/sokinpui/reconcile/model"
)

// DefaultLimit is the number of snapshots kept on each stack.
const DefaultLimit = 50

// History holds the undo and redo stacks of decision snapshots.
type History struct {
	undo  []model.Decisions
	redo  []model.Decisions
	limit int
}

// New creates an empty history. A non-positive limit means DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Limit returns the capacity of each stack.
func (h *History) Limit() int {
	return h.limit
}

// Write records the decisions as they were before a change and drops any
// redo history.
func (h *History) Write(before model.Decisions) {
	h.undo = h.push(h.undo, before)
	h.redo = nil
}

// Undo pops the most recent snapshot and stores current for Redo. It reports
// false and leaves the history untouched when there is nothing to undo.
func (h *History) Undo(current model.Decisions) (model.Decisions, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = h.push(h.redo, current)
	return prev.Clone(), true
}

// Redo pops the most recently undone snapshot and stores current for Undo.
func (h *History) Redo(current model.Decisions) (model.Decisions, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = h.push(h.undo, current)
	return next.Clone(), true
}

// CanUndo reports whether Undo would change anything.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether Redo would change anything.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// push appends a copy of d, evicting the oldest snapshots past the limit.
func (h *History) push(stack []model.Decisions, d model.Decisions) []model.Decisions {
	stack = append(stack, d.Clone())
	if over := len(stack) - h.limit; over > 0 {
		stack = append(stack[:0], stack[over:]...)
	}
	return stack
}
