package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Version is one text to reconcile, as found in a source document.
type Version struct {
	Label string
	Text  string
}

// labelInHintRegex picks a backticked name out of the paragraph before a block,
// e.g. "Draft from `alice`:".
var labelInHintRegex = regexp.MustCompile("`([^`\n]+)`")

// Splitter cuts one document into versions.
type Splitter struct {
	separator *regexp.Regexp
}

// NewSplitter compiles the separator-line pattern.
func NewSplitter(separator string) (*Splitter, error) {
	re, err := regexp.Compile(separator)
	if err != nil {
		return nil, fmt.Errorf("invalid separator pattern %q: %w", separator, err)
	}
	return &Splitter{separator: re}, nil
}

// Split returns the versions contained in content.
//
// A markdown document with at least two fenced code blocks yields one
// version per block. Otherwise content is cut at every separator line;
// text without separators is a single version.
func (s *Splitter) Split(content string) ([]Version, error) {
	blocks, err := ExtractCodeBlocks([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}
	if len(blocks) >= 2 {
		versions := make([]Version, len(blocks))
		for i, block := range blocks {
			versions[i] = Version{
				Label: labelFromHint(block.Hint, i),
				Text:  block.Content,
			}
		}
		return versions, nil
	}

	parts := s.separator.Split(content, -1)
	versions := make([]Version, len(parts))
	for i, part := range parts {
		versions[i] = Version{Label: defaultLabel(i), Text: part}
	}
	return versions, nil
}

func labelFromHint(hint string, i int) string {
	hint = strings.TrimSpace(hint)
	if match := labelInHintRegex.FindStringSubmatch(hint); len(match) > 1 {
		if label := strings.TrimSpace(match[1]); label != "" {
			return label
		}
	}
	if hint != "" {
		return hint
	}
	return defaultLabel(i)
}

func defaultLabel(i int) string {
	return fmt.Sprintf("version %d", i+1)
}
