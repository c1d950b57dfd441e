package model

import (
	"errors"
	"fmt"
	"strings"
)

// SegmentKind tells a Content segment from a Conflict segment.
type SegmentKind int

const (
	Content SegmentKind = iota
	Conflict
)

func (k SegmentKind) String() string {
	switch k {
	case Content:
		return "content"
	case Conflict:
		return "conflict"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// MarshalText encodes the kind as "content" or "conflict".
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Segment is one fragment of a merge result.
//
// A Content segment carries Text only. A Conflict segment carries OptionA,
// OptionB and Reason; at least one of the options is non-empty.
type Segment struct {
	Kind    SegmentKind `json:"type"`
	Text    string      `json:"content,omitempty"`
	OptionA string      `json:"optionA,omitempty"`
	OptionB string      `json:"optionB,omitempty"`
	Reason  string      `json:"reason,omitempty"`
}

// IsConflict reports whether s needs a decision.
func (s Segment) IsConflict() bool {
	return s.Kind == Conflict
}

// Decision is the resolution chosen for a single conflict.
type Decision int

const (
	UseA Decision = iota + 1
	UseB
	AThenB
	BThenA
)

// ErrUnknownDecision is returned when a decision label cannot be parsed.
var ErrUnknownDecision = errors.New("unknown decision")

func (d Decision) String() string {
	switch d {
	case UseA:
		return "A"
	case UseB:
		return "B"
	case AThenB:
		return "A+B"
	case BThenA:
		return "B+A"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Valid reports whether d is one of the four known decisions.
func (d Decision) Valid() bool {
	return d >= UseA && d <= BThenA
}

// MarshalText encodes the decision as its label ("A", "B", "A+B", "B+A").
func (d Decision) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDecision, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *Decision) UnmarshalText(b []byte) error {
	parsed, err := ParseDecision(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDecision parses a decision label. Matching is case-insensitive and
// accepts "AB"/"BA" as shorthands for "A+B"/"B+A".
func ParseDecision(s string) (Decision, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return UseA, nil
	case "B":
		return UseB, nil
	case "A+B", "AB":
		return AThenB, nil
	case "B+A", "BA":
		return BThenA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDecision, s)
}

// Decisions maps the index of a Conflict segment to its decision.
type Decisions map[int]Decision

// Clone returns an independent copy of d. A nil map clones to an empty one.
func (d Decisions) Clone() Decisions {
	out := make(Decisions, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Mark is one token of a conflict option annotated for highlighting.
type Mark struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed"`
}

// Summary holds the results of a merge run for display.
type Summary struct {
	Versions   int
	Segments   int
	Conflicts  int
	Unresolved int
	Written    []string
	Message    string
}
