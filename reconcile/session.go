package reconcile

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/sokinpui/reconcile/internal/assemble"
	"github.com/sokinpui/reconcile/internal/highlight"
	"github.com/sokinpui/reconcile/internal/state"
	"github.com/sokinpui/reconcile/model"
)

// ErrNotConflict is returned when a decision targets a segment that is not a conflict.
var ErrNotConflict = errors.New("segment is not a conflict")

// Session holds the decisions made on one merge result together with their
// undo/redo history. A Session is not safe for concurrent use.
type Session struct {
	segments  []model.Segment
	conflicts []int
	decisions model.Decisions
	history   *state.History
}

// NewSession starts a session over segments with no decisions.
func NewSession(segments []model.Segment, opts Options) *Session {
	segs := append([]model.Segment(nil), segments...)
	return &Session{
		segments: segs,
		conflicts: lo.FilterMap(segs, func(s model.Segment, i int) (int, bool) {
			return i, s.IsConflict()
		}),
		decisions: model.Decisions{},
		history:   state.New(opts.HistoryLimit),
	}
}

// Segments returns a copy of the segment sequence.
func (s *Session) Segments() []model.Segment {
	return append([]model.Segment(nil), s.segments...)
}

// Segment returns the segment at index.
func (s *Session) Segment(index int) model.Segment {
	return s.segments[index]
}

// Decisions returns a copy of the current decisions.
func (s *Session) Decisions() model.Decisions {
	return s.decisions.Clone()
}

// Decision returns the decision for the conflict at index, if any.
func (s *Session) Decision(index int) (model.Decision, bool) {
	d, ok := s.decisions[index]
	return d, ok
}

// SetDecision records d for the conflict at index. The previous decisions
// are pushed onto the undo history and the redo history is cleared.
func (s *Session) SetDecision(index int, d model.Decision) error {
	if index < 0 || index >= len(s.segments) || !s.segments[index].IsConflict() {
		return fmt.Errorf("%w: index %d", ErrNotConflict, index)
	}
	if !d.Valid() {
		return fmt.Errorf("%w: %d", model.ErrUnknownDecision, int(d))
	}

	s.history.Write(s.decisions)
	next := s.decisions.Clone()
	next[index] = d
	s.decisions = next
	return nil
}

// Undo restores the decisions as they were before the last change. It
// reports false, changing nothing, when there is no history.
func (s *Session) Undo() bool {
	prev, ok := s.history.Undo(s.decisions)
	if ok {
		s.decisions = prev
	}
	return ok
}

// Redo re-applies the last undone change. It reports false, changing
// nothing, when nothing was undone.
func (s *Session) Redo() bool {
	next, ok := s.history.Redo(s.decisions)
	if ok {
		s.decisions = next
	}
	return ok
}

// CanUndo reports whether Undo would change the decisions.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the decisions.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Assemble renders the final text and counts the conflicts still unresolved.
func (s *Session) Assemble() (string, int) {
	return assemble.Text(s.segments, s.decisions)
}

// ConflictIndices returns the segment indices of all conflicts, in order.
func (s *Session) ConflictIndices() []int {
	return append([]int(nil), s.conflicts...)
}

// ConflictCount returns the number of conflicts.
func (s *Session) ConflictCount() int {
	return len(s.conflicts)
}

// ResolvedCount returns the number of conflicts with a decision.
func (s *Session) ResolvedCount() int {
	return len(s.decisions)
}

// IsFullyResolved reports whether every conflict has a decision.
func (s *Session) IsFullyResolved() bool {
	return s.ResolvedCount() == s.ConflictCount()
}

// ConflictNumber returns the 1-based position of the conflict at index
// among all conflicts.
func (s *Session) ConflictNumber(index int) (int, bool) {
	pos := lo.IndexOf(s.conflicts, index)
	if pos < 0 {
		return 0, false
	}
	return pos + 1, true
}

// ConflictAt returns the segment index of the conflict with the given
// 1-based number.
func (s *Session) ConflictAt(number int) (int, bool) {
	if number < 1 || number > len(s.conflicts) {
		return 0, false
	}
	return s.conflicts[number-1], true
}

// Highlight marks the differing tokens of the conflict at index.
func (s *Session) Highlight(index int) (left, right []model.Mark, err error) {
	if index < 0 || index >= len(s.segments) || !s.segments[index].IsConflict() {
		return nil, nil, fmt.Errorf("%w: index %d", ErrNotConflict, index)
	}
	seg := s.segments[index]
	left, right = highlight.Inline(seg.OptionA, seg.OptionB)
	return left, right, nil
}
