package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gerunddev/mdtree/internal/diff"
	"github.com/gerunddev/mdtree/internal/inspect"
	"github.com/gerunddev/mdtree/internal/logger"
	"github.com/gerunddev/mdtree/internal/materialize"
	"github.com/gerunddev/mdtree/internal/outline"
	"github.com/gerunddev/mdtree/internal/render"
	"github.com/gerunddev/mdtree/internal/styles"
)

// NewDiffCommand creates the diff subcommand
func NewDiffCommand() *cobra.Command {
	var flags namingFlags

	cmd := &cobra.Command{
		Use:   "diff <outline-file> <dir>",
		Short: "Compare the tree an outline would produce with an existing one",
		Long: `Plan the outline as if dir were empty and show a unified diff of
paths and titles between dir and that plan.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			flags.out = args[1]
			s, err := flags.resolve(cmd, args[0], cfg)
			if err != nil {
				return err
			}
			s.dryRun = true

			out := cmd.OutOrStdout()
			return runDiff(args[0], s, out, isTerminal(out))
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "naming mode: standard or alternative")
	cmd.Flags().IntVarP(&flags.maxLength, "max-length", "l", 0, "maximum name length")
	cmd.Flags().BoolVar(&flags.allowEmpty, "allow-empty-dirs", false, "make a leaf a directory when a sibling has children")
	cmd.Flags().StringVar(&flags.title, "title", "", "title of the root index written for leading body lines")

	return cmd
}

func runDiff(input string, s settings, w io.Writer, styled bool) error {
	root, err := outline.ParseFile(input)
	if err != nil {
		return err
	}

	opts := s.options(logger.Discard())
	opts.Fresh = true
	res, err := materialize.Materialize(root, s.output, opts)
	if err != nil {
		return err
	}

	entries, err := inspect.Scan(s.output)
	if err != nil {
		return err
	}

	unified := diff.Unified(s.output, input, diff.TreeListing(entries), diff.PlanListing(res, s.output))
	if unified == "" {
		fmt.Fprintln(w, styles.SuccessStyle.Render("✓ Tree matches the outline"))
		return nil
	}

	if styled {
		_, err = io.WriteString(w, diff.Render(unified, render.DefaultWidth))
	} else {
		_, err = io.WriteString(w, unified)
	}
	return err
}
