package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/mdtree/internal/inspect"
	"github.com/gerunddev/mdtree/internal/render"
	"github.com/gerunddev/mdtree/internal/tui"
)

// NewBrowseCommand creates the browse subcommand
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <dir>",
		Short: "Browse a generated tree and read its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if _, err := inspect.Scan(dir); err != nil {
				return err
			}

			m := tui.InitBrowseModel(dir,
				func() ([]inspect.Entry, error) { return inspect.Scan(dir) },
				render.Document,
			)
			p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run browser: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}
}
