// Package cli provides the Cobra command structure for yamllex.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/yamllex/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root yamllex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "yamllex",
		Short: "An incremental YAML highlighter and folding engine",
		Long: `yamllex styles YAML a line at a time, computes fold levels for every
line, and restyles only what an edit can affect.

It highlights YAML files and the YAML inside Markdown front matter and code
blocks, prints fold outlines, and can watch files and restyle them
incrementally as they change.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newFoldCommand())
	rootCmd.AddCommand(newStylesCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
