package merge

import (
	"strings"

	"github.com/sokinpui/reconcile/model"
)

// All folds versions left to right through Pairwise and returns the segments
// of the last comparison only.
//
// Between passes the accumulated result is flattened with Flatten, so a
// conflict found against an earlier version survives only as its newer side.
// No versions yield no segments; a single version is returned verbatim as
// one Content segment.
func (m Merger) All(versions []string) []model.Segment {
	switch len(versions) {
	case 0:
		return []model.Segment{}
	case 1:
		return []model.Segment{{Kind: model.Content, Text: versions[0]}}
	}

	base := versions[0]
	var segments []model.Segment
	for i, v := range versions[1:] {
		segments = m.Pairwise(base, v)
		if i < len(versions)-2 {
			base = Flatten(segments)
		}
	}
	return segments
}

// Flatten renders segments as plain text, taking OptionB for conflicts.
func Flatten(segments []model.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case model.Content:
			b.WriteString(seg.Text)
		case model.Conflict:
			b.WriteString(seg.OptionB)
		}
	}
	return b.String()
}
