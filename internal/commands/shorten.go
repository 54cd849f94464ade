package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gerunddev/mdtree/internal/logger"
	"github.com/gerunddev/mdtree/internal/rename"
	"github.com/gerunddev/mdtree/internal/styles"
)

// NewShortenCommand creates the shorten subcommand
func NewShortenCommand() *cobra.Command {
	var length int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "shorten <dir>",
		Short: "Cut every name below a directory down to a hard length",
		Long: `Rename files and directories below dir, deepest first, so that no
name is longer than --max-length characters. Extensions are kept and index.md
is left alone. A rename whose target already exists is skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-length") {
				length = cfg.ShortenLength
			}
			if length <= 0 {
				return fmt.Errorf("--max-length must be positive, got %d", length)
			}

			log, cleanup := openLogger(cmd, cfg)
			defer cleanup()

			return runShorten(args[0], rename.Options{Length: length, DryRun: dryRun, Logger: log}, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&length, "max-length", "l", rename.DefaultLength, "maximum name length, extension excluded")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "list the renames without applying them")

	return cmd
}

func runShorten(dir string, opts rename.Options, w io.Writer) error {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if !opts.DryRun {
		unlock, err := lockOutput(dir)
		if err != nil {
			return err
		}
		defer unlock()
	}

	report, err := rename.Shorten(dir, opts)
	if err != nil {
		return err
	}

	for _, m := range report.Moves {
		fmt.Fprintf(w, "%s %s → %s\n", styles.SuccessStyle.Render("✓"), relTo(dir, m.From), relTo(dir, m.To))
	}
	for _, s := range report.Skipped {
		fmt.Fprintf(w, "%s %s: %v\n", styles.WarningStyle.Render("!"), relTo(dir, s.Path), s.Err)
	}

	verb := "Renamed"
	if opts.DryRun {
		verb = "Would rename"
	}
	fmt.Fprintln(w, styles.DimStyle.Render(fmt.Sprintf("%s %d, skipped %d", verb, len(report.Moves), len(report.Skipped))))
	return nil
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
