package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/reconcile/internal/config"
)

func newSplitter(t *testing.T) *Splitter {
	t.Helper()
	s, err := NewSplitter(config.DefaultSeparator)
	require.NoError(t, err)
	return s
}

func TestExtractCodeBlocks(t *testing.T) {
	source := "Draft from `alice`:\n\n```text\nMeet on Monday.\nBring snacks.\n```\n\nSecond draft\n```\nMeet on Friday.\n```\n"
	blocks, err := ExtractCodeBlocks([]byte(source))
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, "text", blocks[0].Lang)
	assert.Equal(t, "Meet on Monday.\nBring snacks.\n", blocks[0].Content)
	assert.Equal(t, "Draft from `alice`:", blocks[0].Hint)

	assert.Equal(t, "", blocks[1].Lang)
	assert.Equal(t, "Meet on Friday.\n", blocks[1].Content)
	assert.Equal(t, "Second draft", blocks[1].Hint)
}

func TestSplit_CodeBlocks(t *testing.T) {
	source := "Draft from `alice`:\n\n```\nMeet on Monday.\n```\n\n```\nMeet on Friday.\n```\n"
	versions, err := newSplitter(t).Split(source)
	require.NoError(t, err)

	assert.Equal(t, []Version{
		{Label: "alice", Text: "Meet on Monday.\n"},
		{Label: "version 2", Text: "Meet on Friday.\n"},
	}, versions)
}

func TestSplit_SeparatorLines(t *testing.T) {
	source := "first draft\nline two\n===\nsecond draft\n=====  \nthird\n"
	versions, err := newSplitter(t).Split(source)
	require.NoError(t, err)

	assert.Equal(t, []Version{
		{Label: "version 1", Text: "first draft\nline two\n"},
		{Label: "version 2", Text: "second draft\n"},
		{Label: "version 3", Text: "third\n"},
	}, versions)
}

func TestSplit_SingleBlockFallsBackToSeparators(t *testing.T) {
	source := "```\nonly one block\n```\n"
	versions, err := newSplitter(t).Split(source)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, source, versions[0].Text)
}

func TestSplit_InlineEqualsAreNotSeparators(t *testing.T) {
	versions, err := newSplitter(t).Split("a === b\n")
	require.NoError(t, err)
	require.Len(t, versions, 1)
}

func TestNewSplitter_InvalidPattern(t *testing.T) {
	_, err := NewSplitter("([")
	assert.Error(t, err)
}
