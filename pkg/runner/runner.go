package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/yamllex/internal/logging"
	"github.com/yaklabco/yamllex/pkg/config"
	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/fsutil"
	"github.com/yaklabco/yamllex/pkg/langdetect"
	"github.com/yaklabco/yamllex/pkg/lexer"
	yamllexer "github.com/yaklabco/yamllex/pkg/lexer/yaml"
	"github.com/yaklabco/yamllex/pkg/markdown"
)

// Runner analyzes files with one language module and keyword set.
type Runner struct {
	Module   *lexer.Module
	Keywords lexer.KeywordSet

	// Markdown enables analysis of YAML embedded in Markdown files.
	Markdown bool

	// MarkdownOptions controls block extraction.
	MarkdownOptions markdown.Options
}

// New creates a Runner for the YAML module configured by cfg.
// A nil cfg uses defaults.
func New(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	module := yamllexer.Module()
	words := strings.Fields(cfg.WordList(module.DefaultKeywords))

	return &Runner{
		Module:          module,
		Keywords:        lexer.NewWordList(words...),
		Markdown:        cfg.MarkdownEnabled(),
		MarkdownOptions: markdown.Options{DetectUntagged: cfg.DetectUntagged()},
	}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path first.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldBytes, result.Stats.Bytes,
		logging.FieldDuration, time.Since(started),
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.ProcessFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads and analyzes one file. YAML files become a single
// section; Markdown files one section per embedded block. Files with
// other extensions are analyzed when their content is detected as YAML
// and skipped otherwise.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		logger.Debug("read failed", logging.FieldError, err)
		return outcome
	}

	switch {
	case isMarkdown(path):
		if !r.Markdown {
			outcome.Skipped = true
			return outcome
		}
		for _, block := range markdown.Extract(content, r.MarkdownOptions) {
			outcome.Sections = append(outcome.Sections, Section{
				Kind:      SectionKind(block.Kind),
				StartLine: block.StartLine,
				Offset:    block.StartOffset,
				Info:      block.Info,
				Buffer:    r.Analyze(block.Body(content)),
			})
		}
	case langdetect.IsYAML(path, content):
		outcome.Sections = []Section{{Kind: SectionFile, Buffer: r.Analyze(content)}}
	default:
		outcome.Skipped = true
		logger.Debug("not YAML, skipped")
		return outcome
	}

	logger.Debug("analyzed", logging.FieldSections, len(outcome.Sections))
	return outcome
}

// Analyze styles and folds content in a new buffer.
func (r *Runner) Analyze(content []byte) *document.Buffer {
	buf := document.New(content, document.WithModule(r.Module), document.WithKeywords(r.Keywords))
	buf.EnsureStyled(buf.Length())
	return buf
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range MarkdownExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}
