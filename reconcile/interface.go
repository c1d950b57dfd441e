package reconcile

import (
	"fmt"

	"github.com/sokinpui/reconcile/internal/highlight"
	"github.com/sokinpui/reconcile/internal/merge"
	"github.com/sokinpui/reconcile/model"
)

// Options for using reconcile as a library. The zero value is ready to use.
type Options struct {
	// Label attached to every conflict. Defaults to "Versions differ here".
	Reason string
	// Undo/redo capacity of a Session. Defaults to 50.
	HistoryLimit int
}

// Merge reconciles versions in order with default options.
func Merge(versions ...string) []model.Segment {
	return Options{}.Merge(versions...)
}

// Merge reconciles versions in order. Each version after the first is
// compared against the accumulated result of the ones before it, and only
// the last comparison's segments are returned.
func (o Options) Merge(versions ...string) []model.Segment {
	return merge.Merger{Reason: o.Reason}.All(versions)
}

// Open merges versions and starts a resolution session on the result.
func Open(versions []string, opts Options) *Session {
	return NewSession(opts.Merge(versions...), opts)
}

// Highlight marks the tokens of two conflict options that differ from the
// other side.
func Highlight(optionA, optionB string) (left, right []model.Mark) {
	return highlight.Inline(optionA, optionB)
}

// Labels returns the headers for the two sides of a conflict in a merge of
// n versions.
func Labels(n int) (a, b string) {
	if n > 2 {
		return fmt.Sprintf("Combined (v1..v%d)", n-1), fmt.Sprintf("Version %d (Latest)", n)
	}
	return "Version 1", "Version 2"
}
