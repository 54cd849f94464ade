package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/mdtree/internal/config"
	"github.com/gerunddev/mdtree/internal/styles"
)

// NewConfigCommand creates the config subcommand
func NewConfigCommand() *cobra.Command {
	var initialize bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print where mdtree keeps its configuration, log and locks, followed
by the effective settings. --init writes a config file with the defaults when
none exists yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(initialize, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&initialize, "init", false, "write a default config file")
	return cmd
}

func runConfig(initialize bool, w io.Writer) error {
	path := config.ConfigPath()

	if initialize {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := config.DefaultConfig().Save(); err != nil {
			return err
		}
		fmt.Fprintln(w, styles.SuccessStyle.Render("✓ Wrote "+path))
		fmt.Fprintln(w)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s%s\n", styles.LabelStyle.Render("Config:"), path)
	fmt.Fprintf(w, "%s%s\n", styles.LabelStyle.Render("Log file:"), cfg.LogFile)
	fmt.Fprintf(w, "%s%s\n", styles.LabelStyle.Render("Locks:"), config.LockDir())
	fmt.Fprintln(w)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
