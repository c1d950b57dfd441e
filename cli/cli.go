package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sokinpui/reconcile/model"
)

// Config holds all the command-line flag values.
type Config struct {
	Files        []string
	LookupDirs   []string
	Clipboard    bool
	Output       string
	Copy         bool
	Nvim         bool
	Buffer       bool
	JSON         bool
	Diff         bool
	Interactive  bool
	Prompt       bool
	Reason       string
	Separator    string
	HistoryLimit int
	ConfigPath   string
	Verbose      bool
	NoColor      bool

	// Decisions maps 1-based conflict numbers to the decision given with --decide.
	Decisions map[int]model.Decision
	// All is applied to every conflict without an explicit decision; zero when unset.
	All model.Decision
}

// ParseFlags parses os.Args using pflag.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs defines and parses command-line flags from args.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var decide []string
	var all string

	fs := pflag.NewFlagSet("reconcile", pflag.ContinueOnError)

	// Input
	fs.StringSliceVarP(&cfg.LookupDirs, "lookup-dir", "l", []string{}, "Directories to look for version files in (default: current directory).")
	fs.BoolVarP(&cfg.Clipboard, "clipboard", "p", false, "Read versions from the clipboard even if stdin is piped.")
	fs.StringVarP(&cfg.Separator, "separator", "s", "", "Regular expression matching the lines that separate versions in a single document.")

	// Merge
	fs.StringVar(&cfg.Reason, "reason", "", "Label attached to every conflict.")
	fs.IntVar(&cfg.HistoryLimit, "history", 0, "Number of undo steps kept in interactive mode (default 50).")
	fs.StringSliceVarP(&decide, "decide", "d", []string{}, "Resolve conflict N with CHOICE, as N=CHOICE. CHOICE is one of A, B, A+B, B+A.")
	fs.StringVarP(&all, "all", "a", "", "Resolve every remaining conflict with CHOICE.")

	// Interaction, mutually exclusive
	fs.BoolVarP(&cfg.Interactive, "interactive", "i", false, "Resolve conflicts in an interactive terminal UI.")
	fs.BoolVar(&cfg.Prompt, "prompt", false, "Ask for each conflict in turn.")

	// Output
	fs.StringVarP(&cfg.Output, "output", "o", "", "Write the reconciled text to a file.")
	fs.BoolVarP(&cfg.Copy, "copy", "c", false, "Copy the reconciled text to the clipboard.")
	fs.BoolVarP(&cfg.Nvim, "nvim", "n", false, "Open the reconciled text in Neovim (saved to --output unless --buffer is set).")
	fs.BoolVarP(&cfg.Buffer, "buffer", "b", false, "Leave the Neovim buffer unsaved.")
	fs.BoolVar(&cfg.JSON, "json", false, "Print segments, decisions and highlights as JSON.")
	fs.BoolVar(&cfg.Diff, "diff", false, "Print a diff of the reconciled text against the first version.")

	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to a reconcile.yml config file.")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")

	fs.Usage = func() {
		fmt.Println("Usage: reconcile [flags] [version files...]")
		fmt.Println("\nReconcile two or more versions of a text into one, resolving the spots where they disagree.")
		fmt.Println("Without files, a single document is read from stdin (pipe) or the clipboard and split into versions")
		fmt.Println("by its fenced code blocks or by separator lines (=== by default).")
		fmt.Println("\nExample: reconcile draft-1.md draft-2.md draft-3.md -a B -o final.md")
		fmt.Println("\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Files = fs.Args()

	// Validate mutually exclusive flags
	if cfg.Interactive && cfg.Prompt {
		return nil, fmt.Errorf("error: --interactive and --prompt are mutually exclusive")
	}
	if cfg.JSON && cfg.Diff {
		return nil, fmt.Errorf("error: --json and --diff are mutually exclusive")
	}
	if cfg.Buffer && !cfg.Nvim {
		return nil, fmt.Errorf("error: --buffer requires --nvim")
	}
	if cfg.HistoryLimit < 0 {
		return nil, fmt.Errorf("error: --history must not be negative")
	}

	decisions, err := parseDecide(decide)
	if err != nil {
		return nil, err
	}
	cfg.Decisions = decisions

	if all != "" {
		d, err := model.ParseDecision(all)
		if err != nil {
			return nil, fmt.Errorf("error: --all: %w", err)
		}
		cfg.All = d
	}

	return cfg, nil
}

// parseDecide turns N=CHOICE pairs into a decision map keyed by conflict number.
func parseDecide(pairs []string) (map[int]model.Decision, error) {
	decisions := make(map[int]model.Decision, len(pairs))
	for _, pair := range pairs {
		num, choice, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("error: --decide %q: expected N=CHOICE", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("error: --decide %q: conflict number must be a positive integer", pair)
		}
		d, err := model.ParseDecision(choice)
		if err != nil {
			return nil, fmt.Errorf("error: --decide %q: %w", pair, err)
		}
		decisions[n] = d
	}
	return decisions, nil
}
