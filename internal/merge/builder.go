// Package merge turns token alignments into Content/Conflict segments and
// folds any number of versions into one segment sequence.
package merge

import (
	"strings"

	"github.com/sokinpui/reconcile/internal/lcs"
	"github.com/sokinpui/reconcile/internal/tokenize"
	"github.com/sokinpui/reconcile/model"
)

// DefaultReason labels every conflict unless a Merger overrides it.
const DefaultReason = "Versions differ here"

// Merger builds segment sequences. The zero value uses DefaultReason.
type Merger struct {
	Reason string
}

func (m Merger) reason() string {
	if m.Reason == "" {
		return DefaultReason
	}
	return m.Reason
}

// Pairwise merges two texts into a coalesced segment sequence.
func (m Merger) Pairwise(a, b string) []model.Segment {
	return m.Segments(lcs.Ops(tokenize.Tokenize(a), tokenize.Tokenize(b)))
}

// Segments groups a diff-op stream into blocks and classifies each one.
//
// A block is either a run of Equal ops or a run of Delete/Insert ops. Equal
// runs become Content. A change run with both deletes and inserts becomes a
// Conflict; a one-sided run is accepted as Content.
func (m Merger) Segments(ops []lcs.DiffOp) []model.Segment {
	var segments []model.Segment
	var block []lcs.DiffOp

	flush := func() {
		if len(block) == 0 {
			return
		}
		segments = append(segments, m.classify(block))
		block = block[:0]
	}

	for _, op := range ops {
		if len(block) > 0 && (op.Op == lcs.Equal) != (block[0].Op == lcs.Equal) {
			flush()
		}
		block = append(block, op)
	}
	flush()

	return Coalesce(segments)
}

func (m Merger) classify(block []lcs.DiffOp) model.Segment {
	var all, dels, ins strings.Builder
	hasEq := false
	for _, op := range block {
		all.WriteString(op.Text)
		switch op.Op {
		case lcs.Equal:
			hasEq = true
		case lcs.Delete:
			dels.WriteString(op.Text)
		case lcs.Insert:
			ins.WriteString(op.Text)
		}
	}

	if !hasEq && dels.Len() > 0 && ins.Len() > 0 {
		return model.Segment{
			Kind:    model.Conflict,
			OptionA: dels.String(),
			OptionB: ins.String(),
			Reason:  m.reason(),
		}
	}
	return model.Segment{Kind: model.Content, Text: all.String()}
}

// Coalesce joins adjacent Content segments. The input is not modified.
func Coalesce(segments []model.Segment) []model.Segment {
	out := make([]model.Segment, 0, len(segments))
	for _, seg := range segments {
		if n := len(out); n > 0 && out[n-1].Kind == model.Content && seg.Kind == model.Content {
			out[n-1].Text += seg.Text
			continue
		}
		out = append(out, seg)
	}
	return out
}
