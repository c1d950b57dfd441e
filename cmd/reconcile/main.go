package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sokinpui/reconcile/cli"
	"github.com/sokinpui/reconcile/internal/tui"
	"github.com/sokinpui/reconcile/internal/ui"
	"github.com/sokinpui/reconcile/model"
	"github.com/sokinpui/reconcile/reconcile"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		// pflag already prints the error message.
		os.Exit(1)
	}

	log.SetLevel(log.WarnLevel)
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.NoColor {
		ui.DisableColor()
	}

	app, err := reconcile.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	var summary model.Summary
	if cfg.Interactive {
		summary, err = runInteractive(app)
	} else {
		summary, err = app.Execute()
	}
	if err != nil {
		var detailed *reconcile.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		ui.Error("Error: %v", err)
		os.Exit(1)
	}
	ui.PrintSummary(summary)
}

// runInteractive resolves conflicts in the TUI and exports the result only
// when the user accepts it.
func runInteractive(app *reconcile.App) (model.Summary, error) {
	sess, err := app.Load(context.Background())
	if err != nil {
		return model.Summary{}, err
	}
	if err := app.ApplyFlagDecisions(sess); err != nil {
		return model.Summary{}, err
	}

	p := tea.NewProgram(tui.New(sess, len(app.Versions)), tea.WithAltScreen(), tea.WithInputTTY())
	final, err := p.Run()
	if err != nil {
		return model.Summary{}, fmt.Errorf("error running program: %w", err)
	}
	if m, ok := final.(tui.Model); !ok || !m.Accepted() {
		return model.Summary{Message: "Quit without accepting; nothing was written."}, nil
	}
	return app.Export(sess)
}
