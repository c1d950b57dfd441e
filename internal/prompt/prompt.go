// Package prompt resolves conflicts one at a time through terminal forms.
package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/sokinpui/reconcile/internal/ui"
	"github.com/sokinpui/reconcile/model"
)

// Resolver is the part of a merge session the prompt needs.
type Resolver interface {
	ConflictIndices() []int
	Segment(index int) model.Segment
	Decision(index int) (model.Decision, bool)
	SetDecision(index int, d model.Decision) error
}

// skip is the form value for leaving a conflict unresolved.
const skip = "skip"

// Asker shows one form for a conflict and returns the chosen value.
type Asker func(title, description string, options []huh.Option[string]) (string, error)

// Run asks about every conflict that has no decision yet.
func Run(r Resolver) error {
	return RunWith(r, ask)
}

// RunWith is Run with a custom form implementation.
func RunWith(r Resolver, asker Asker) error {
	conflicts := r.ConflictIndices()
	for n, index := range conflicts {
		if _, ok := r.Decision(index); ok {
			continue
		}
		seg := r.Segment(index)

		title := ui.ConflictTitle(n+1, len(conflicts))
		log.Debugf("prompting for %s (segment %d)", title, index)
		choice, err := asker(title, seg.Reason, Options(seg))
		if err != nil {
			return fmt.Errorf("failed to get user input for conflict resolution: %w", err)
		}
		if choice == skip {
			continue
		}

		d, err := model.ParseDecision(choice)
		if err != nil {
			return fmt.Errorf("unexpected choice: %w", err)
		}
		if err := r.SetDecision(index, d); err != nil {
			return err
		}
	}
	return nil
}

// Options lists the choices offered for a conflict, previewing the text each
// choice produces.
func Options(seg model.Segment) []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("A: "+preview(seg.OptionA), model.UseA.String()),
		huh.NewOption("B: "+preview(seg.OptionB), model.UseB.String()),
		huh.NewOption("A then B", model.AThenB.String()),
		huh.NewOption("B then A", model.BThenA.String()),
		huh.NewOption("Skip (leave unresolved)", skip),
	}
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "(empty)"
	}
	if r := []rune(s); len(r) > 60 {
		return string(r[:59]) + "…"
	}
	return s
}

func ask(title, description string, options []huh.Option[string]) (string, error) {
	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(description).
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}
