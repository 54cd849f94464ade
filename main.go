package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/mdtree/internal/commands"
	"github.com/gerunddev/mdtree/internal/errs"
	"github.com/gerunddev/mdtree/internal/styles"
)

func main() {
	rootCmd := commands.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ Error: "+err.Error()))
		os.Exit(errs.ExitCode(err))
	}
}
