package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/sokinpui/reconcile/internal/fs"
	"github.com/sokinpui/reconcile/internal/ui"
)

// SourceProvider determines and retrieves the raw version texts.
type SourceProvider struct {
	resolver       *fs.PathResolver
	forceClipboard bool

	stdin         io.Reader
	isPiped       func() bool
	readClipboard func() (string, error)
}

// New creates a new SourceProvider reading from the process stdin and the
// system clipboard.
func New(resolver *fs.PathResolver, forceClipboard bool) *SourceProvider {
	return &SourceProvider{
		resolver:       resolver,
		forceClipboard: forceClipboard,
		stdin:          os.Stdin,
		isPiped:        stdinIsPiped,
		readClipboard:  clipboard.ReadAll,
	}
}

func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// ReadFiles reads every file concurrently and returns their contents in the
// order given. All read failures are reported together.
func (sp *SourceProvider) ReadFiles(ctx context.Context, paths []string) ([]string, error) {
	texts := make([]string, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := sp.resolver.ReadFile(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			log.Debugf("read version %d from %s (%d bytes)", i+1, path, len(text))
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return texts, nil
}

// GetContent retrieves a single document from stdin (if piped) or the clipboard.
func (sp *SourceProvider) GetContent() (string, error) {
	if !sp.forceClipboard && sp.isPiped() {
		ui.Header("--- Reading from stdin ---")
		content, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}

	ui.Header("--- Reading from clipboard ---")
	content, err := sp.readClipboard()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		ui.Warning("Clipboard is empty. Nothing to process.")
		return "", nil
	}
	return content, nil
}
