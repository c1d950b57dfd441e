package nvim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{""}},
		{"single line", "hello", []string{"hello"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.in)
			strs := make([]string, len(got))
			for i, l := range got {
				strs[i] = string(l)
			}
			assert.Equal(t, tt.want, strs)
		})
	}
}
