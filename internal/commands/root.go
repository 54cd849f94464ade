package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for mdtree
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdtree",
		Short: "Turn an indented outline into a tree of Markdown documents",
		Long: `mdtree reads an indentation-structured text outline and builds a
directory tree from it: every branch becomes a directory with an index.md,
every leaf becomes a Markdown document, and lines marked with ** become the
body of the entry above them.

Existing files are never overwritten. Names that are already taken get a
short, stable suffix instead.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the styled error
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("verbose", false, "copy the run log, debug entries included, to stderr")

	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewPreviewCommand())
	cmd.AddCommand(NewDiffCommand())
	cmd.AddCommand(NewTreeCommand())
	cmd.AddCommand(NewBrowseCommand())
	cmd.AddCommand(NewShortenCommand())
	cmd.AddCommand(NewClearCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewLogCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewVersionCommand creates the version subcommand
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "mdtree %s\n", Version)
			return err
		},
	}
}
