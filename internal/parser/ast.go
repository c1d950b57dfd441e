package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock represents a fenced code block from markdown content.
type CodeBlock struct {
	// Hint is the content of the paragraph immediately preceding the code block.
	Hint string
	// Lang is the info string of the code block (e.g., "markdown", "text").
	Lang string
	// Content is the raw text inside the code block, newline-terminated per line.
	Content string
}

// ExtractCodeBlocks uses a markdown AST to find all fenced code blocks
// and their preceding paragraph.
func ExtractCodeBlocks(source []byte) ([]CodeBlock, error) {
	var blocks []CodeBlock
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block CodeBlock
		if fenced.Info != nil {
			block.Lang = string(fenced.Info.Text(source))
		}

		block.Content = string(rawLines(fenced, source))

		if prev := fenced.PreviousSibling(); prev != nil {
			if p, ok := prev.(*ast.Paragraph); ok {
				block.Hint = strings.TrimSpace(string(rawLines(p, source)))
			}
		}

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}
	return blocks, nil
}

// rawLines returns the source bytes of a block node's lines, markup included.
func rawLines(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.Bytes()
}
