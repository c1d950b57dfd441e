package ui

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/sokinpui/reconcile/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

// DisableColor turns off colored output for every helper.
func DisableColor() {
	color.NoColor = true
}

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// ConflictTitle names a conflict by its ordinal, e.g. "2nd conflict of 5".
func ConflictTitle(number, total int) string {
	return fmt.Sprintf("%s conflict of %d", humanize.Ordinal(number), total)
}

// --- Summaries ---

// PrintSummary reports the outcome of a merge run on stderr.
func PrintSummary(s model.Summary) {
	Header("\n--- Merge Summary ---")

	if s.Message != "" {
		Info("%s", s.Message)
	}
	if s.Versions == 0 {
		return
	}

	Info("Merged %d version(s) into %d segment(s).", s.Versions, s.Segments)
	switch {
	case s.Conflicts == 0:
		Success("No conflicts: the versions reconcile cleanly.")
	case s.Unresolved == 0:
		Success("Resolved all %d conflict(s).", s.Conflicts)
	default:
		Warning("%d of %d conflict(s) unresolved; placeholders were written in their place.", s.Unresolved, s.Conflicts)
	}

	if len(s.Written) > 0 {
		Success("Wrote result to:")
		for _, w := range s.Written {
			Path("- %s", w)
		}
	}
}
