package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gerunddev/mdtree/internal/styles"
)

// NewLogCommand creates the log subcommand
func NewLogCommand() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent entries of the run log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runLog(cfg.LogFile, lines, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "number of log lines to show")
	return cmd
}

func runLog(path string, lines int, w io.Writer) error {
	if lines <= 0 {
		return fmt.Errorf("--lines must be positive, got %d", lines)
	}

	recent, lastRun, documents := ParseLogFile(path, lines)

	fmt.Fprintf(w, "%s%s\n", styles.LabelStyle.Render("Log file:"), path)
	if lastRun.IsZero() {
		fmt.Fprintf(w, "%s%s\n", styles.LabelStyle.Render("Last run:"), styles.DimStyle.Render("none recorded"))
	} else {
		fmt.Fprintf(w, "%s%s (%d document(s))\n", styles.LabelStyle.Render("Last run:"), lastRun.Format(time.DateTime), documents)
	}
	fmt.Fprintln(w)

	for _, line := range recent {
		fmt.Fprintln(w, styles.DimStyle.Render(line))
	}
	return nil
}
