package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gerunddev/mdtree/internal/inspect"
	"github.com/gerunddev/mdtree/internal/styles"
)

// NewTreeCommand creates the tree subcommand
func NewTreeCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "tree <dir>",
		Short: "List a generated tree with the titles stored in its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("width") {
				width = terminalWidth(out)
			}
			var decorate inspect.Decorator
			if isTerminal(out) {
				decorate = styleName
			}
			return runTree(args[0], width, decorate, out)
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "cut titles to fit this many columns (0 for no limit)")
	return cmd
}

func runTree(dir string, width int, decorate inspect.Decorator, w io.Writer) error {
	entries, err := inspect.Scan(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, styles.DimStyle.Render("No documents in "+dir))
		return nil
	}
	_, err = io.WriteString(w, inspect.FormatTreeWith(entries, width, decorate))
	return err
}

// styleName colors directory and document names in tree listings
func styleName(name string, dir bool) string {
	if dir {
		return styles.DirStyle.Render(name)
	}
	return styles.DocStyle.Render(name)
}

// terminalWidth returns the width of w when it is a terminal, otherwise 0
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(w) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
