package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/reconcile/model"
)

func TestParseArgs(t *testing.T) {
	cfg, err := ParseArgs([]string{"-o", "out.md", "--decide", "1=a", "-d", "3=B+A,2=ab", "--all", "b", "v1.md", "v2.md"})
	require.NoError(t, err)

	assert.Equal(t, []string{"v1.md", "v2.md"}, cfg.Files)
	assert.Equal(t, "out.md", cfg.Output)
	assert.Equal(t, map[int]model.Decision{1: model.UseA, 2: model.AThenB, 3: model.BThenA}, cfg.Decisions)
	assert.Equal(t, model.UseB, cfg.All)
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs(nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Files)
	assert.Empty(t, cfg.Decisions)
	assert.Zero(t, cfg.All)
	assert.Zero(t, cfg.HistoryLimit)
	assert.False(t, cfg.Interactive)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"interactive and prompt", []string{"-i", "--prompt"}},
		{"json and diff", []string{"--json", "--diff"}},
		{"buffer without nvim", []string{"--buffer"}},
		{"negative history", []string{"--history=-1"}},
		{"decide without choice", []string{"--decide", "1"}},
		{"decide with bad number", []string{"--decide", "zero=A"}},
		{"decide with zero", []string{"--decide", "0=A"}},
		{"decide with bad choice", []string{"--decide", "1=C"}},
		{"bad all", []string{"--all", "both"}},
		{"unknown flag", []string{"--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			assert.Error(t, err)
		})
	}
}
