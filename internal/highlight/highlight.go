// Package highlight marks the tokens that differ between two conflict options.
package highlight

import (
	"github.com/sokinpui/reconcile/internal/lcs"
	"github.com/sokinpui/reconcile/internal/tokenize"
	"github.com/sokinpui/reconcile/model"
)

// Inline tokenizes both options and flags every token that is not part of a
// matched pair in their alignment.
func Inline(a, b string) (left, right []model.Mark) {
	ta, tb := tokenize.Tokenize(a), tokenize.Tokenize(b)
	inA, inB := lcs.Matches(ta, tb)
	return marks(ta, inA), marks(tb, inB)
}

func marks(tokens []string, matched []bool) []model.Mark {
	out := make([]model.Mark, len(tokens))
	for i, tok := range tokens {
		out[i] = model.Mark{Text: tok, Changed: !matched[i]}
	}
	return out
}

// Spans joins consecutive tokens with the same flag, which keeps rendering
// output short for long options.
func Spans(marks []model.Mark) []model.Mark {
	var out []model.Mark
	for _, m := range marks {
		if n := len(out); n > 0 && out[n-1].Changed == m.Changed {
			out[n-1].Text += m.Text
			continue
		}
		out = append(out, m)
	}
	return out
}
