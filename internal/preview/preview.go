// Package preview renders the reconciled text as a diff against a reference version.
package preview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a character-level diff from original to result. With color
// set, insertions and deletions are ANSI-colored; otherwise they are marked
// inline as {+inserted+} and [-deleted-].
func Diff(original, result string, color bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, result, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	if color {
		return dmp.DiffPrettyText(diffs)
	}

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
