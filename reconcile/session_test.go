package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/reconcile/model"
)

const (
	monday = "Meet on Monday at noon."
	friday = "Meet on Friday at noon."
)

func newMeeting(t *testing.T, opts Options) *Session {
	t.Helper()
	sess := Open([]string{monday, friday}, opts)
	require.Equal(t, []int{1}, sess.ConflictIndices())
	return sess
}

func TestMerge(t *testing.T) {
	testCases := []struct {
		name     string
		versions []string
		want     []model.Segment
	}{
		{
			name: "no versions",
			want: []model.Segment{},
		},
		{
			name:     "single version is returned verbatim",
			versions: []string{"just one"},
			want:     []model.Segment{{Kind: model.Content, Text: "just one"}},
		},
		{
			name:     "identical versions",
			versions: []string{"same text", "same text"},
			want:     []model.Segment{{Kind: model.Content, Text: "same text"}},
		},
		{
			name:     "one-sided addition is accepted",
			versions: []string{"Meet on Monday.", "Meet on Monday at noon."},
			want:     []model.Segment{{Kind: model.Content, Text: "Meet on Monday at noon."}},
		},
		{
			name:     "substitution is a conflict",
			versions: []string{monday, friday},
			want: []model.Segment{
				{Kind: model.Content, Text: "Meet on "},
				{Kind: model.Conflict, OptionA: "Monday", OptionB: "Friday", Reason: "Versions differ here"},
				{Kind: model.Content, Text: " at noon."},
			},
		},
		{
			name:     "only the last pass is returned",
			versions: []string{"a b c", "a x c", "a x d"},
			want: []model.Segment{
				{Kind: model.Content, Text: "a x "},
				{Kind: model.Conflict, OptionA: "c", OptionB: "d", Reason: "Versions differ here"},
			},
		},
		{
			name:     "earlier versions are lost once superseded",
			versions: []string{"X", "Y", "X"},
			want: []model.Segment{
				{Kind: model.Conflict, OptionA: "Y", OptionB: "X", Reason: "Versions differ here"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge(tc.versions...)
			if len(tc.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMerge_Deterministic(t *testing.T) {
	a := "The quick brown fox, jumps over the lazy dog!"
	b := "A quick red fox jumps over the (very) lazy cat."
	assert.Equal(t, Merge(a, b), Merge(a, b))
}

func TestOptions_Reason(t *testing.T) {
	segs := Options{Reason: "Pick one"}.Merge(monday, friday)
	require.Len(t, segs, 3)
	assert.Equal(t, "Pick one", segs[1].Reason)
}

func TestSession_Assemble(t *testing.T) {
	testCases := []struct {
		decision   model.Decision
		want       string
		unresolved int
	}{
		{0, "Meet on [CONFLICT: Versions differ here] at noon.", 1},
		{model.UseA, monday, 0},
		{model.UseB, friday, 0},
		{model.AThenB, "Meet on Monday Friday at noon.", 0},
		{model.BThenA, "Meet on Friday Monday at noon.", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.decision.String(), func(t *testing.T) {
			sess := newMeeting(t, Options{})
			if tc.decision != 0 {
				require.NoError(t, sess.SetDecision(1, tc.decision))
			}
			text, unresolved := sess.Assemble()
			assert.Equal(t, tc.want, text)
			assert.Equal(t, tc.unresolved, unresolved)
		})
	}
}

func TestSession_AssembleNewlineSeparator(t *testing.T) {
	sess := NewSession([]model.Segment{
		{Kind: model.Content, Text: "start\n"},
		{Kind: model.Conflict, OptionA: "line one\n", OptionB: "two", Reason: "Versions differ here"},
		{Kind: model.Content, Text: "\nend"},
	}, Options{})

	require.NoError(t, sess.SetDecision(1, model.AThenB))
	text, _ := sess.Assemble()
	assert.Equal(t, "start\nline one\n\ntwo\nend", text)

	require.NoError(t, sess.SetDecision(1, model.BThenA))
	text, _ = sess.Assemble()
	assert.Equal(t, "start\ntwo\nline one\n\nend", text)
}

func TestSession_SetDecisionErrors(t *testing.T) {
	sess := newMeeting(t, Options{})

	assert.ErrorIs(t, sess.SetDecision(0, model.UseA), ErrNotConflict)
	assert.ErrorIs(t, sess.SetDecision(-1, model.UseA), ErrNotConflict)
	assert.ErrorIs(t, sess.SetDecision(99, model.UseA), ErrNotConflict)
	assert.ErrorIs(t, sess.SetDecision(1, model.Decision(9)), model.ErrUnknownDecision)

	assert.Empty(t, sess.Decisions())
	assert.False(t, sess.CanUndo())
}

func TestSession_UndoRedo(t *testing.T) {
	sess := newMeeting(t, Options{})
	assert.False(t, sess.Undo())
	assert.False(t, sess.Redo())

	require.NoError(t, sess.SetDecision(1, model.UseA))
	require.NoError(t, sess.SetDecision(1, model.UseB))

	require.True(t, sess.Undo())
	assert.Equal(t, model.Decisions{1: model.UseA}, sess.Decisions())
	require.True(t, sess.Undo())
	assert.Empty(t, sess.Decisions())
	assert.False(t, sess.Undo())

	require.True(t, sess.Redo())
	require.True(t, sess.Redo())
	assert.Equal(t, model.Decisions{1: model.UseB}, sess.Decisions())
	assert.False(t, sess.Redo())
}

func TestSession_NewDecisionClearsRedo(t *testing.T) {
	sess := newMeeting(t, Options{})
	require.NoError(t, sess.SetDecision(1, model.UseA))
	require.True(t, sess.Undo())
	require.True(t, sess.CanRedo())

	require.NoError(t, sess.SetDecision(1, model.BThenA))
	assert.False(t, sess.CanRedo())
	assert.False(t, sess.Redo())
	assert.Equal(t, model.Decisions{1: model.BThenA}, sess.Decisions())
}

func TestSession_UndoIsBounded(t *testing.T) {
	sess := newMeeting(t, Options{})
	choices := []model.Decision{model.UseA, model.UseB, model.AThenB, model.BThenA}
	for i := 0; i < 60; i++ {
		require.NoError(t, sess.SetDecision(1, choices[i%len(choices)]))
	}

	undone := 0
	for sess.Undo() {
		undone++
	}
	assert.Equal(t, 50, undone)
	// The oldest snapshots were evicted, so the empty state is unreachable.
	assert.NotEmpty(t, sess.Decisions())
}

func TestSession_CustomHistoryLimit(t *testing.T) {
	sess := newMeeting(t, Options{HistoryLimit: 3})
	for i := 0; i < 5; i++ {
		require.NoError(t, sess.SetDecision(1, model.UseA))
	}
	undone := 0
	for sess.Undo() {
		undone++
	}
	assert.Equal(t, 3, undone)

	redone := 0
	for sess.Redo() {
		redone++
	}
	assert.Equal(t, 3, redone)
}

func TestSession_DecisionsAreCopies(t *testing.T) {
	sess := newMeeting(t, Options{})
	require.NoError(t, sess.SetDecision(1, model.UseA))

	d := sess.Decisions()
	d[1] = model.UseB
	got, ok := sess.Decision(1)
	require.True(t, ok)
	assert.Equal(t, model.UseA, got)
}

func TestSession_Progress(t *testing.T) {
	sess := Open([]string{"a b c d e", "a x c y e"}, Options{})
	require.Equal(t, 2, sess.ConflictCount())
	assert.Equal(t, 0, sess.ResolvedCount())
	assert.False(t, sess.IsFullyResolved())

	first, ok := sess.ConflictAt(1)
	require.True(t, ok)
	second, ok := sess.ConflictAt(2)
	require.True(t, ok)
	_, ok = sess.ConflictAt(3)
	assert.False(t, ok)
	_, ok = sess.ConflictAt(0)
	assert.False(t, ok)

	n, ok := sess.ConflictNumber(second)
	require.True(t, ok)
	assert.Equal(t, 2, n)
	_, ok = sess.ConflictNumber(0)
	assert.False(t, ok)

	require.NoError(t, sess.SetDecision(first, model.UseB))
	require.NoError(t, sess.SetDecision(second, model.UseB))
	assert.True(t, sess.IsFullyResolved())

	text, unresolved := sess.Assemble()
	assert.Equal(t, "a x c y e", text)
	assert.Zero(t, unresolved)
}

func TestSession_Highlight(t *testing.T) {
	sess := newMeeting(t, Options{})

	left, right, err := sess.Highlight(1)
	require.NoError(t, err)
	assert.Equal(t, []model.Mark{{Text: "Monday", Changed: true}}, left)
	assert.Equal(t, []model.Mark{{Text: "Friday", Changed: true}}, right)

	_, _, err = sess.Highlight(0)
	assert.ErrorIs(t, err, ErrNotConflict)
}

func TestHighlight(t *testing.T) {
	left, right := Highlight("red apple", "green apple")
	require.Len(t, left, 3)
	require.Len(t, right, 3)
	assert.True(t, left[0].Changed)
	assert.False(t, left[2].Changed)
	assert.Equal(t, "green", right[0].Text)
}

func TestLabels(t *testing.T) {
	a, b := Labels(2)
	assert.Equal(t, "Version 1", a)
	assert.Equal(t, "Version 2", b)

	a, b = Labels(4)
	assert.Equal(t, "Combined (v1..v3)", a)
	assert.Equal(t, "Version 4 (Latest)", b)
}
