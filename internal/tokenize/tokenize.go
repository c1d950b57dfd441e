// Package tokenize splits text into word, whitespace and punctuation tokens.
package tokenize

import (
	"strings"
	"unicode"
)

// punctuation characters are always emitted as single-character tokens.
const punctuation = ".,!?;:\"'()[]{}"

type class int

const (
	classWord class = iota
	classSpace
	classPunct
)

func classify(r rune) class {
	switch {
	case unicode.IsSpace(r) || r == '\uFEFF':
		return classSpace
	case strings.ContainsRune(punctuation, r):
		return classPunct
	default:
		return classWord
	}
}

// Tokenize splits s into non-empty tokens: runs of whitespace, single
// punctuation characters, and runs of everything else. Concatenating the
// result reproduces s exactly. An empty string yields nil.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string
	start := 0
	prev := classPunct
	for i, r := range s {
		c := classify(r)
		if i > start && (c != prev || c == classPunct) {
			tokens = append(tokens, s[start:i])
			start = i
		}
		prev = c
	}
	return append(tokens, s[start:])
}
