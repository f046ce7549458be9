package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/yamllex/internal/configloader"
	"github.com/yaklabco/yamllex/internal/logging"
	"github.com/yaklabco/yamllex/pkg/config"
	"github.com/yaklabco/yamllex/pkg/reporter"
	"github.com/yaklabco/yamllex/pkg/runner"
)

// analyzeFlags holds the flags shared by commands that analyze files.
type analyzeFlags struct {
	format         string
	jobs           int
	ignore         []string
	include        []string
	extensions     []string
	keywords       []string
	extraKeywords  []string
	theme          map[string]string
	follow         bool
	gutter         bool
	noMarkdown     bool
	detectUntagged bool
	noSummary      bool
	showSkipped    bool
	compact        bool
}

func addAnalyzeFlags(cmd *cobra.Command, flags *analyzeFlags, defaultFormat string) {
	cmd.Flags().StringVar(&flags.format, "format", defaultFormat, "output format: text, json, outline, stats")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only analyze files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to pick up in directories (default .yaml,.yml)")
	cmd.Flags().StringSliceVar(&flags.keywords, "keywords", nil, "replace the keyword list")
	cmd.Flags().StringSliceVar(&flags.extraKeywords, "extra-keywords", nil, "add words to the keyword list")
	cmd.Flags().StringToStringVar(&flags.theme, "theme", nil, "style colors, e.g. Key=12,Comment=#808080")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.gutter, "gutter", false, "print line numbers and fold markers")
	cmd.Flags().BoolVar(&flags.noMarkdown, "no-markdown", false, "skip YAML embedded in Markdown files")
	cmd.Flags().BoolVar(&flags.detectUntagged, "detect-untagged", false,
		"also analyze untagged code blocks that look like YAML")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.showSkipped, "show-skipped", false, "list files that were not recognized as YAML")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}

// cliConfig maps explicitly set flags onto a Config overlay. Unset flags
// stay zero so files and environment keep their say.
func (f *analyzeFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		mode, err := config.ParseColorMode(color)
		if err != nil {
			return nil, &UsageError{Err: err}
		}
		cfg.Color = mode
	}
	cfg.Jobs = f.jobs

	if changed("keywords") {
		cfg.Keywords = f.keywords
	}
	if changed("extra-keywords") {
		cfg.ExtraKeywords = f.extraKeywords
	}
	if len(f.theme) > 0 {
		cfg.Theme = f.theme
	}
	if changed("gutter") {
		cfg.Gutter = &f.gutter
	}
	if changed("no-markdown") {
		enabled := !f.noMarkdown
		cfg.Markdown.Enabled = &enabled
	}
	if changed("detect-untagged") {
		cfg.Markdown.DetectUntagged = &f.detectUntagged
	}

	return cfg, nil
}

// loadConfig resolves the configuration for a command, with cli on top.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cli *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMarkdown, cfg.MarkdownEnabled(),
		logging.FieldKeywords, cfg.WordList(""),
	)

	return cfg, nil
}

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// runAnalyze discovers, analyzes and reports the files named by args.
func runAnalyze(cmd *cobra.Command, args []string, flags *analyzeFlags, cli *config.Config) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, cli)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return &UsageError{Err: err}
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     normalizeExtensions(flags.extensions),
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   flags.ignore,
		FollowSymlinks: flags.follow,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(cfg).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       cfg.Color,
		Theme:       cfg.Theme,
		Gutter:      cfg.GutterEnabled(),
		ShowSummary: !flags.noSummary,
		ShowSkipped: flags.showSkipped,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}

// normalizeExtensions accepts "yaml" as well as ".yaml".
func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
