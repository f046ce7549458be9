package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/yamllex/internal/logging"
	"github.com/yaklabco/yamllex/internal/watch"
	"github.com/yaklabco/yamllex/pkg/config"
	"github.com/yaklabco/yamllex/pkg/reporter"
	"github.com/yaklabco/yamllex/pkg/runner"
)

// ErrNothingToWatch is returned when the paths name no YAML files.
var ErrNothingToWatch = errors.New("no YAML files to watch")

type watchFlags struct {
	format   string
	debounce time.Duration
	quiet    bool
	gutter   bool
	theme    map[string]string
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Restyle YAML files incrementally as they change",
		Long: `Watch YAML files and restyle them as they change on disk.

Each change is applied to the analyzed document as a single edit. Lines
before the first edited line keep their styling and only the rest of the
document is lexed again. Every refresh logs the line the rescan resumed
from and how many lines were rescanned, then prints the document again.

Examples:
  yamllex watch config.yaml
  yamllex watch --quiet --debug manifests/
  yamllex watch --format outline values.yml`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, outline")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce, "quiet period before a change is applied")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "log refreshes without printing documents")
	cmd.Flags().BoolVar(&flags.gutter, "gutter", false, "print line numbers and fold markers")
	cmd.Flags().StringToStringVar(&flags.theme, "theme", nil, "style colors, e.g. Key=12,Comment=#808080")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	overlay := &config.Config{Theme: flags.theme}
	if cmd.Flags().Changed("gutter") {
		overlay.Gutter = &flags.gutter
	}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return fmt.Errorf("get color flag: %w", err)
		}
		if overlay.Color, err = config.ParseColorMode(color); err != nil {
			return &UsageError{Err: err}
		}
	}

	cfg, err := loadConfig(ctx, cmd, workDir, overlay)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return &UsageError{Err: err}
	}
	if format == reporter.FormatStats {
		return &UsageError{Err: fmt.Errorf("format %q is not available in watch mode", format)}
	}

	// Watching analyzes whole files as YAML, so Markdown is left out.
	paths, err := runner.Discover(ctx, runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Extensions: runner.DefaultExtensions(),
		Config:     cfg,
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}
	if len(paths) == 0 {
		return ErrNothingToWatch
	}

	out := cmd.OutOrStdout()
	if flags.quiet {
		out = io.Discard
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       cfg.Color,
		Theme:       cfg.Theme,
		Gutter:      cfg.GutterEnabled(),
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	session := watch.NewSession(runner.New(cfg), watch.NewStore(watch.DefaultExpiration, watch.DefaultCleanupInterval))

	var reportErr error
	err = session.Watch(ctx, watch.Config{Paths: paths, Debounce: flags.debounce}, func(update watch.Update) {
		if !update.Changed || reportErr != nil {
			return
		}
		reportErr = reportUpdate(ctx, rep, update)
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return reportErr
}

// reportUpdate prints a refreshed document as a one-file result.
func reportUpdate(ctx context.Context, rep reporter.Reporter, update watch.Update) error {
	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path: update.Path,
			Sections: []runner.Section{{
				Kind:   runner.SectionFile,
				Buffer: update.Buffer,
			}},
		}},
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logging.FromContext(ctx).Error("report failed", logging.FieldPath, update.Path, logging.FieldError, err)
		return fmt.Errorf("report %s: %w", update.Path, err)
	}
	return nil
}
