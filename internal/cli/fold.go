package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/yamllex/pkg/config"
)

const foldLongDescription = `Print the fold outline of YAML files.

Each line of the outline is a foldable region: the line range it covers
followed by the text of its header line, indented by nesting depth.
Use --format json for the fold level of every line.

Examples:
  yamllex fold deployment.yaml
  yamllex fold --format json values.yml`

func newFoldCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:     "fold [paths...]",
		Aliases: []string{"outline"},
		Short:   "Print fold outlines of YAML files",
		Long:    foldLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.cliConfig(cmd)
			if err != nil {
				return err
			}
			// Format from files or environment does not apply here.
			cfg.Format = config.OutputFormat(flags.format)
			return runAnalyze(cmd, args, flags, cfg)
		},
	}

	addAnalyzeFlags(cmd, flags, string(config.FormatOutline))

	return cmd
}
