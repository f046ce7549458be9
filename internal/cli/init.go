package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/yamllex/internal/logging"
	"github.com/yaklabco/yamllex/internal/ui/pretty"
	"github.com/yaklabco/yamllex/pkg/config"
	"github.com/yaklabco/yamllex/pkg/fsutil"
	yamllexer "github.com/yaklabco/yamllex/pkg/lexer/yaml"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// ErrInitAborted is returned when the user declines to overwrite.
var ErrInitAborted = errors.New("init aborted")

// initFlags holds the flags for the init command.
type initFlags struct {
	force    bool
	full     bool
	noBackup bool
	format   string
	output   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new yamllex configuration file",
		Long: `Create a new .yamllex.yml configuration file in the current directory
with sensible defaults. The file can be customized to change the keyword
list, the Markdown embedding, ignored paths and the colors of the theme.

When the file already exists you are asked before it is replaced, or the
command fails when not run from a terminal. --force replaces it without
asking. A backup of the old file is kept unless --no-backup is given.

Examples:
  yamllex init                      Create minimal .yamllex.yml
  yamllex init --full               Also list every style with its color
  yamllex init --format json        Create .yamllex.json instead
  yamllex init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "List every style of the theme with its default color")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "Do not keep a backup of a replaced file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .yamllex.yml or .yamllex.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return &UsageError{Err: fmt.Errorf("invalid format %q: must be yaml or json", flags.format)}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".yamllex.yml"
		if flags.format == "json" {
			outputPath = ".yamllex.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	exists := false
	if _, err := os.Stat(absPath); err == nil {
		exists = true
		if !flags.force {
			ok, err := confirmOverwrite(cmd.InOrStdin(), cmd.ErrOrStderr(), outputPath)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInitAborted
			}
		}
	}

	opts := config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	}
	if flags.full {
		opts.Styles = pretty.DefaultTheme(yamllexer.Module())
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if exists && !flags.noBackup {
		if _, err := fsutil.CreateBackup(ctx, absPath); err != nil {
			return fmt.Errorf("backup %s: %w", outputPath, err)
		}
		logger.Info("kept backup", logging.FieldPath, fsutil.BackupPath(outputPath))
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	switch {
	case !written:
		logger.Info("configuration file is already up to date", logging.FieldPath, outputPath)
	case exists:
		logger.Warn("replaced existing configuration file", logging.FieldPath, outputPath)
	default:
		logger.Info("created configuration file", logging.FieldPath, outputPath)
	}

	if flags.full {
		logger.Info("full template lists every style with its default color")
	}
	logger.Info("run 'yamllex styles' to preview the theme")

	return nil
}

// confirmOverwrite asks on in whether path may be replaced. It refuses
// without asking when in is not a terminal.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	file, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return false, &UsageError{Err: fmt.Errorf("file %q already exists; use --force to overwrite", path)}
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
