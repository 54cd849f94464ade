package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerunddev/mdtree/internal/logger"
	"github.com/gerunddev/mdtree/internal/materialize"
	"github.com/gerunddev/mdtree/internal/outline"
	"github.com/gerunddev/mdtree/internal/render"
)

// NewPreviewCommand creates the preview subcommand
func NewPreviewCommand() *cobra.Command {
	var flags namingFlags

	cmd := &cobra.Command{
		Use:   "preview <outline-file>",
		Short: "Show the tree an outline would produce without writing it",
		Long: `Plan a run against the output directory as it is now and print
the resulting tree, collision suffixes included. Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := flags.resolve(cmd, args[0], cfg)
			if err != nil {
				return err
			}
			s.dryRun = true

			out := cmd.OutOrStdout()
			return runPreview(args[0], s, out, isTerminal(out))
		},
		SilenceUsage: true,
	}

	flags.register(cmd)
	return cmd
}

func runPreview(input string, s settings, w io.Writer, styled bool) error {
	root, err := outline.ParseFile(input)
	if err != nil {
		return err
	}

	res, err := materialize.Materialize(root, s.output, s.options(logger.Discard()))
	if err != nil {
		return err
	}

	md := planMarkdown(res, s.output)
	if styled {
		md = render.Markdown(md, render.DefaultWidth)
	}
	_, err = io.WriteString(w, md)
	return err
}

// planMarkdown renders a planned run as a nested Markdown list
func planMarkdown(res *materialize.Result, outputRoot string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", outputRoot)

	if len(res.Entries) == 0 {
		b.WriteString("Nothing to write.\n")
		return b.String()
	}

	for _, e := range res.Entries {
		name := filepath.Base(e.Path)
		if e.Kind == materialize.KindDirectory {
			name += "/"
		}
		indent := strings.Repeat("  ", max(e.Depth-1, 0))
		fmt.Fprintf(&b, "%s- `%s` %s\n", indent, name, e.Title)
	}

	fmt.Fprintf(&b, "\n%d director(ies), %d document(s)", res.DirsCreated, res.DocsWritten)
	if res.Collisions > 0 {
		fmt.Fprintf(&b, ", %d renamed to avoid collisions", res.Collisions)
	}
	b.WriteString("\n")
	return b.String()
}
