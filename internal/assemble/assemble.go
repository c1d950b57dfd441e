// Package assemble renders a segment sequence and its decisions as final text.
package assemble

import (
	"fmt"
	"strings"

	"github.com/sokinpui/reconcile/model"
)

// Placeholder is written for a conflict that has no decision yet.
func Placeholder(reason string) string {
	if reason == "" {
		reason = "Select Option"
	}
	return fmt.Sprintf("[CONFLICT: %s]", reason)
}

// Separator returns the text placed between both options of a combined
// decision: a newline if either option spans lines, a space otherwise.
func Separator(a, b string) string {
	if strings.Contains(a, "\n") || strings.Contains(b, "\n") {
		return "\n"
	}
	return " "
}

// Resolve returns the text of a single conflict under decision d.
func Resolve(seg model.Segment, d model.Decision) string {
	switch d {
	case model.UseA:
		return seg.OptionA
	case model.UseB:
		return seg.OptionB
	case model.AThenB:
		return seg.OptionA + Separator(seg.OptionA, seg.OptionB) + seg.OptionB
	case model.BThenA:
		return seg.OptionB + Separator(seg.OptionA, seg.OptionB) + seg.OptionA
	default:
		return Placeholder(seg.Reason)
	}
}

// Text concatenates segments in order, resolving conflicts through
// decisions. It also returns how many conflicts have no valid decision.
func Text(segments []model.Segment, decisions model.Decisions) (string, int) {
	var b strings.Builder
	unresolved := 0
	for i, seg := range segments {
		if seg.Kind != model.Conflict {
			b.WriteString(seg.Text)
			continue
		}
		d, ok := decisions[i]
		if !ok || !d.Valid() {
			unresolved++
			b.WriteString(Placeholder(seg.Reason))
			continue
		}
		b.WriteString(Resolve(seg, d))
	}
	return b.String(), unresolved
}
