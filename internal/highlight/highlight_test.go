package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sokinpui/reconcile/model"
)

func join(marks []model.Mark) string {
	var b strings.Builder
	for _, m := range marks {
		b.WriteString(m.Text)
	}
	return b.String()
}

func changed(marks []model.Mark) []string {
	var out []string
	for _, m := range marks {
		if m.Changed {
			out = append(out, m.Text)
		}
	}
	return out
}

func TestInline(t *testing.T) {
	left, right := Inline("the big red ball", "the small red ball")

	assert.Equal(t, "the big red ball", join(left))
	assert.Equal(t, "the small red ball", join(right))
	assert.Equal(t, []string{"big"}, changed(left))
	assert.Equal(t, []string{"small"}, changed(right))
}

func TestInline_Disjoint(t *testing.T) {
	left, right := Inline("Monday", "Friday")
	assert.Equal(t, []model.Mark{{Text: "Monday", Changed: true}}, left)
	assert.Equal(t, []model.Mark{{Text: "Friday", Changed: true}}, right)
}

func TestInline_EmptySide(t *testing.T) {
	left, right := Inline("", "added words")
	assert.Empty(t, left)
	assert.Equal(t, []string{"added", " ", "words"}, changed(right))
}

func TestInline_Identical(t *testing.T) {
	left, right := Inline("same, same", "same, same")
	assert.Empty(t, changed(left))
	assert.Empty(t, changed(right))
}

func TestSpans(t *testing.T) {
	left, _ := Inline("a b c d", "a x c y")
	spans := Spans(left)
	assert.Equal(t, []model.Mark{
		{Text: "a ", Changed: false},
		{Text: "b", Changed: true},
		{Text: " c ", Changed: false},
		{Text: "d", Changed: true},
	}, spans)
	assert.Empty(t, Spans(nil))
}
