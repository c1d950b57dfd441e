package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/sokinpui/reconcile/cli"
	"github.com/sokinpui/reconcile/internal/config"
	"github.com/sokinpui/reconcile/internal/fs"
	"github.com/sokinpui/reconcile/internal/nvim"
	"github.com/sokinpui/reconcile/internal/parser"
	"github.com/sokinpui/reconcile/internal/preview"
	"github.com/sokinpui/reconcile/internal/prompt"
	"github.com/sokinpui/reconcile/internal/source"
	"github.com/sokinpui/reconcile/model"
)

// ErrNotEnoughVersions is returned when fewer than two non-blank versions were supplied.
var ErrNotEnoughVersions = errors.New("please provide at least two versions of text to merge")

// App orchestrates the command-line application.
type App struct {
	cfg            *cli.Config
	opts           Options
	splitter       *parser.Splitter
	pathResolver   *fs.PathResolver
	sourceProvider *source.SourceProvider
	out            io.Writer

	// Versions holds the non-blank versions of the last Load, in merge order.
	Versions []string
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance. Flag values override the config file.
func New(cfg *cli.Config) (*App, error) {
	fileCfg, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	opts := Options{
		Reason:       lo.Ternary(cfg.Reason != "", cfg.Reason, fileCfg.Reason),
		HistoryLimit: lo.Ternary(cfg.HistoryLimit > 0, cfg.HistoryLimit, fileCfg.HistoryLimit),
	}
	separator := lo.Ternary(cfg.Separator != "", cfg.Separator, fileCfg.Separator)

	splitter, err := parser.NewSplitter(separator)
	if err != nil {
		return nil, err
	}
	pathResolver, err := fs.NewPathResolver(cfg.LookupDirs)
	if err != nil {
		return nil, err
	}

	log.Debugf("config: reason=%q historyLimit=%d separator=%q", opts.Reason, opts.HistoryLimit, separator)
	return &App{
		cfg:            cfg,
		opts:           opts,
		splitter:       splitter,
		pathResolver:   pathResolver,
		sourceProvider: source.New(pathResolver, cfg.Clipboard),
		out:            os.Stdout,
	}, nil
}

func loadConfig(path string) (*config.FileConfig, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not get current working directory: %w", err)
	}
	return config.Load(wd)
}

// SetOutput redirects what the App prints on stdout.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Options returns the merge options in effect.
func (a *App) Options() Options {
	return a.opts
}

// Execute runs a non-interactive merge: load, apply flag and prompt
// decisions, then export.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	sess, err := a.Load(context.Background())
	if err != nil {
		return model.Summary{}, err
	}
	if err := a.ApplyFlagDecisions(sess); err != nil {
		return model.Summary{}, err
	}
	if a.cfg.Prompt && sess.ConflictCount() > 0 {
		if err := prompt.Run(sess); err != nil {
			return model.Summary{}, err
		}
	}
	return a.Export(sess)
}

// Load gathers the versions, drops blank ones and merges the rest.
func (a *App) Load(ctx context.Context) (*Session, error) {
	versions, err := a.loadVersions(ctx)
	if err != nil {
		return nil, err
	}

	nonBlank := lo.Filter(versions, func(v string, _ int) bool {
		return strings.TrimSpace(v) != ""
	})
	if dropped := len(versions) - len(nonBlank); dropped > 0 {
		log.Infof("ignoring %d blank version(s)", dropped)
	}
	if len(nonBlank) < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrNotEnoughVersions, len(nonBlank))
	}
	a.Versions = nonBlank

	sess := Open(nonBlank, a.opts)
	log.Debugf("merged %d versions into %d segments with %d conflicts", len(nonBlank), len(sess.segments), sess.ConflictCount())
	return sess, nil
}

func (a *App) loadVersions(ctx context.Context) ([]string, error) {
	if len(a.cfg.Files) > 0 {
		return a.sourceProvider.ReadFiles(ctx, a.cfg.Files)
	}

	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return nil, err
	}
	versions, err := a.splitter.Split(content)
	if err != nil {
		return nil, err
	}
	for i, v := range versions {
		log.Debugf("version %d: %s (%d bytes)", i+1, v.Label, len(v.Text))
	}
	return lo.Map(versions, func(v parser.Version, _ int) string { return v.Text }), nil
}

// ApplyFlagDecisions applies --decide in conflict order, then --all, to
// sess. The undo history therefore ends with the highest numbered conflict.
func (a *App) ApplyFlagDecisions(sess *Session) error {
	numbers := lo.Keys(a.cfg.Decisions)
	slices.Sort(numbers)
	for _, number := range numbers {
		d := a.cfg.Decisions[number]
		index, ok := sess.ConflictAt(number)
		if !ok {
			return fmt.Errorf("--decide %d=%s: there are only %d conflict(s)", number, d, sess.ConflictCount())
		}
		if err := sess.SetDecision(index, d); err != nil {
			return err
		}
	}

	if a.cfg.All.Valid() {
		for _, index := range sess.ConflictIndices() {
			if _, ok := sess.Decision(index); ok {
				continue
			}
			if err := sess.SetDecision(index, a.cfg.All); err != nil {
				return err
			}
		}
	}
	return nil
}

// jsonResult is the document printed by --json.
type jsonResult struct {
	Versions   int               `json:"versions"`
	Segments   []model.Segment   `json:"segments"`
	Decisions  model.Decisions   `json:"decisions"`
	Highlights []jsonHighlight   `json:"highlights"`
	Text       string            `json:"text"`
	Unresolved int               `json:"unresolved"`
	Labels     map[string]string `json:"labels"`
}

type jsonHighlight struct {
	Index int          `json:"index"`
	A     []model.Mark `json:"a"`
	B     []model.Mark `json:"b"`
}

// Export writes the assembled text of sess to every requested destination.
// Stdout receives the text unless a file, clipboard or Neovim destination is
// chosen; --json and --diff replace the text on stdout.
func (a *App) Export(sess *Session) (model.Summary, error) {
	text, unresolved := sess.Assemble()
	summary := model.Summary{
		Versions:   len(a.Versions),
		Segments:   len(sess.segments),
		Conflicts:  sess.ConflictCount(),
		Unresolved: unresolved,
	}

	toStdout := a.cfg.JSON || a.cfg.Diff || (a.cfg.Output == "" && !a.cfg.Copy && !a.cfg.Nvim)
	if toStdout {
		if err := a.printResult(sess, text, unresolved); err != nil {
			return summary, err
		}
	}

	var outPath string
	if a.cfg.Output != "" {
		outPath = a.pathResolver.Resolve(a.cfg.Output)
	}

	if outPath != "" && !a.cfg.Nvim {
		if err := fs.WriteFile(outPath, text); err != nil {
			return summary, err
		}
		summary.Written = append(summary.Written, outPath)
	}

	if a.cfg.Copy {
		if err := clipboard.WriteAll(text); err != nil {
			return summary, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		summary.Written = append(summary.Written, "clipboard")
	}

	if a.cfg.Nvim {
		if err := a.openInNvim(outPath, text); err != nil {
			return summary, err
		}
		summary.Written = append(summary.Written, lo.Ternary(outPath != "", outPath, "nvim buffer"))
	}

	return summary, nil
}

func (a *App) printResult(sess *Session, text string, unresolved int) error {
	switch {
	case a.cfg.JSON:
		labelA, labelB := Labels(len(a.Versions))
		result := jsonResult{
			Versions:   len(a.Versions),
			Segments:   sess.Segments(),
			Decisions:  sess.Decisions(),
			Highlights: []jsonHighlight{},
			Text:       text,
			Unresolved: unresolved,
			Labels:     map[string]string{"a": labelA, "b": labelB},
		}
		for _, index := range sess.ConflictIndices() {
			left, right, err := sess.Highlight(index)
			if err != nil {
				return err
			}
			result.Highlights = append(result.Highlights, jsonHighlight{Index: index, A: left, B: right})
		}
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case a.cfg.Diff:
		_, err := fmt.Fprintln(a.out, preview.Diff(a.Versions[0], text, !a.cfg.NoColor))
		return err
	default:
		_, err := fmt.Fprint(a.out, text)
		return err
	}
}

// openInNvim loads text into Neovim and saves it to path unless --buffer is
// set or path is empty.
func (a *App) openInNvim(path, text string) error {
	manager, err := nvim.New()
	if err != nil {
		return err
	}
	defer manager.Close()

	if err := manager.ShowText(path, text); err != nil {
		return err
	}
	if a.cfg.Buffer || path == "" {
		return nil
	}
	return manager.SaveAllBuffers()
}
