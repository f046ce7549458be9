package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/yamllex/internal/ui/pretty"
	"github.com/yaklabco/yamllex/pkg/config"
	yamllexer "github.com/yaklabco/yamllex/pkg/lexer/yaml"
)

func newStylesCommand() *cobra.Command {
	var theme map[string]string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the token styles and their colors",
		Long: `List every style the YAML analyzer assigns, with its number, name and the
color it is printed in. Colors come from the built-in theme, overridden by
the theme section of the configuration and by --theme.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStyles(cmd, theme)
		},
	}

	cmd.Flags().StringToStringVar(&theme, "theme", nil, "style colors, e.g. Key=12,Comment=#808080")

	return cmd
}

func runStyles(cmd *cobra.Command, theme map[string]string) error {
	ctx := commandContext(cmd)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	overlay := &config.Config{Theme: theme}
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

	out := cmd.OutOrStdout()
	colorEnabled := pretty.IsColorEnabled(cfg.Color, out)
	renderer := pretty.NewRenderer(out, colorEnabled)
	styles := pretty.NewStylesWithRenderer(renderer)

	module := yamllexer.Module()
	palette := pretty.NewPalette(renderer, module, cfg.Theme)

	nameWidth := len("STYLE")
	for _, info := range module.Styles {
		nameWidth = max(nameWidth, len(info.Name))
	}

	var b strings.Builder
	b.WriteString(styles.TableHeader.Render(fmt.Sprintf("%3s  %-*s  %-8s", "#", nameWidth, "STYLE", "COLOR")))
	b.WriteString("\n")

	for _, info := range module.Styles {
		color, overridden := cfg.Theme[info.Name]
		if !overridden {
			color = pretty.DefaultColor(info.Name)
		}
		if color == "" {
			color = "-"
		}

		fmt.Fprintf(&b, "%3d  %s  %-8s\n",
			int(info.Style),
			palette.Render(info.Style, fmt.Sprintf("%-*s", nameWidth, info.Name)),
			color,
		)
	}

	_, err = fmt.Fprint(out, b.String())
	return err
}
