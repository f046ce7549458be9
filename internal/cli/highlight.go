package cli

import "github.com/spf13/cobra"

const highlightLongDescription = `Print YAML files with syntax highlighting.

By default, analyzes all .yaml and .yml files in the current directory and
subdirectories, along with YAML front matter and yaml code blocks in
Markdown files. Specify paths to analyze specific files or directories.
Files named explicitly are analyzed whatever their extension.

Examples:
  yamllex highlight                       # Highlight the current directory
  yamllex highlight deploy.yaml           # Highlight a single file
  yamllex highlight --gutter values.yml   # Show line numbers and fold markers
  yamllex highlight --format json .       # Spans and line states as JSON
  yamllex highlight --format stats charts # Byte counts per style`

func newHighlightCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:     "highlight [paths...]",
		Aliases: []string{"hl", "cat"},
		Short:   "Highlight YAML files",
		Long:    highlightLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.cliConfig(cmd)
			if err != nil {
				return err
			}
			return runAnalyze(cmd, args, flags, cfg)
		},
	}

	addAnalyzeFlags(cmd, flags, "text")

	return cmd
}
