// Package lcs aligns two token sequences by their longest common subsequence.
//
// Align is the single alignment primitive. Ops turns its step script into a
// diff-op stream for segment building, and Matches turns it into per-side
// matched-index sets for inline highlighting.
package lcs

import "fmt"

// Op is an alignment step from sequence A to sequence B.
type Op int

const (
	Equal  Op = iota // Token present in both A and B.
	Delete           // Token present in A only.
	Insert           // Token present in B only.
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "EQ"
	case Delete:
		return "DEL"
	case Insert:
		return "INS"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Step is one entry of an alignment script. A and B are the token indexes the
// step consumes; the side a step does not consume is -1.
type Step struct {
	Op Op
	A  int
	B  int
}

// DiffOp is an alignment step carrying its token text.
type DiffOp struct {
	Op   Op
	Text string
}

// Table holds dp[i][j], the LCS length of a[:i] and b[:j].
type Table struct {
	rows, cols int
	cells      []int
}

// NewTable fills the dynamic-programming table for a and b in O(len(a)*len(b)).
func NewTable(a, b []string) *Table {
	t := &Table{rows: len(a) + 1, cols: len(b) + 1}
	t.cells = make([]int, t.rows*t.cols)
	for i := 1; i < t.rows; i++ {
		for j := 1; j < t.cols; j++ {
			if a[i-1] == b[j-1] {
				t.set(i, j, t.At(i-1, j-1)+1)
			} else {
				t.set(i, j, max(t.At(i-1, j), t.At(i, j-1)))
			}
		}
	}
	return t
}

// At returns dp[i][j].
func (t *Table) At(i, j int) int {
	return t.cells[i*t.cols+j]
}

func (t *Table) set(i, j, v int) {
	t.cells[i*t.cols+j] = v
}

// Len returns the length of the longest common subsequence.
func (t *Table) Len() int {
	return t.At(t.rows-1, t.cols-1)
}

// Align returns the alignment script of a against b, in input order.
//
// Backtracking walks from the bottom-right corner of the table. Matching
// tokens step diagonally. Otherwise a tie between dropping a token of A and
// dropping a token of B is broken toward A, so equal-length alternatives are
// always explained by Delete before Insert. Output depends on this convention.
func Align(a, b []string) []Step {
	t := NewTable(a, b)
	steps := make([]Step, 0, len(a)+len(b)-t.Len())

	i, j := len(a), len(b)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			steps = append(steps, Step{Op: Equal, A: i - 1, B: j - 1})
			i--
			j--
		case j == 0 || (i > 0 && t.At(i-1, j) >= t.At(i, j-1)):
			steps = append(steps, Step{Op: Delete, A: i - 1, B: -1})
			i--
		default:
			steps = append(steps, Step{Op: Insert, A: -1, B: j - 1})
			j--
		}
	}

	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return steps
}

// Ops returns the diff-op stream of a against b. Equal and Delete texts
// concatenate to a; Equal and Insert texts concatenate to b.
func Ops(a, b []string) []DiffOp {
	steps := Align(a, b)
	ops := make([]DiffOp, len(steps))
	for k, s := range steps {
		switch s.Op {
		case Insert:
			ops[k] = DiffOp{Op: Insert, Text: b[s.B]}
		default:
			ops[k] = DiffOp{Op: s.Op, Text: a[s.A]}
		}
	}
	return ops
}

// Matches reports, for every token of a and of b, whether it is part of a
// matched pair in the alignment.
func Matches(a, b []string) (inA, inB []bool) {
	inA = make([]bool, len(a))
	inB = make([]bool, len(b))
	for _, s := range Align(a, b) {
		if s.Op == Equal {
			inA[s.A] = true
			inB[s.B] = true
		}
	}
	return inA, inB
}
