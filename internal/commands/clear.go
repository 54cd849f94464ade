package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gerunddev/mdtree/internal/logger"
	"github.com/gerunddev/mdtree/internal/rename"
	"github.com/gerunddev/mdtree/internal/styles"
)

var errNotConfirmed = errors.New("refusing to clear without --yes")

// NewClearCommand creates the clear subcommand
func NewClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear <dir>",
		Short: "Delete everything inside an output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, cleanup := openLogger(cmd, cfg)
			defer cleanup()

			return runClear(args[0], log, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

func runClear(dir string, log *logger.Logger, w io.Writer) error {
	unlock, err := lockOutput(dir)
	if err != nil {
		return err
	}
	defer unlock()

	removed, err := rename.Clear(dir, log)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, styles.SuccessStyle.Render(fmt.Sprintf("✓ Removed %d entr(ies) from %s", removed, dir)))
	return nil
}
