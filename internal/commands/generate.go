package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/mdtree/internal/config"
	"github.com/gerunddev/mdtree/internal/logger"
	"github.com/gerunddev/mdtree/internal/materialize"
	"github.com/gerunddev/mdtree/internal/outline"
	"github.com/gerunddev/mdtree/internal/sanitize"
	"github.com/gerunddev/mdtree/internal/styles"
	"github.com/gerunddev/mdtree/internal/tui"
)

// namingFlags are the options shared by every command that plans a tree
type namingFlags struct {
	out        string
	mode       string
	maxLength  int
	allowEmpty bool
	title      string
}

func (f *namingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory (default: output_dir, or the outline name in the current directory)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "naming mode: standard or alternative")
	cmd.Flags().IntVarP(&f.maxLength, "max-length", "l", 0, "maximum name length")
	cmd.Flags().BoolVar(&f.allowEmpty, "allow-empty-dirs", false, "make a leaf a directory when a sibling has children")
	cmd.Flags().StringVar(&f.title, "title", "", "title of the root index written for leading body lines (default: the outline file name)")
}

// settings is the effective configuration of one run after flags override config
type settings struct {
	output     string
	mode       sanitize.Mode
	maxLength  int
	allowEmpty bool
	dryRun     bool
	title      string
}

func (s settings) options(log *logger.Logger) materialize.Options {
	return materialize.Options{
		Mode:                  s.mode,
		MaxLength:             s.maxLength,
		AllowEmptyDirectories: s.allowEmpty,
		DryRun:                s.dryRun,
		RootTitle:             s.title,
		Logger:                log,
	}
}

// resolve merges flags that were set on cmd over cfg
func (f *namingFlags) resolve(cmd *cobra.Command, input string, cfg *config.Config) (settings, error) {
	s := settings{
		mode:       cfg.Mode(),
		maxLength:  cfg.MaxNameLength,
		allowEmpty: cfg.AllowEmptyDirectories,
		title:      f.title,
	}
	if s.title == "" {
		s.title = outlineStem(input)
	}

	if cmd.Flags().Changed("mode") {
		m, err := sanitize.ParseMode(f.mode)
		if err != nil {
			return s, err
		}
		s.mode = m
	}
	if cmd.Flags().Changed("max-length") {
		if f.maxLength <= 0 {
			return s, fmt.Errorf("--max-length must be positive, got %d", f.maxLength)
		}
		s.maxLength = f.maxLength
	}
	if cmd.Flags().Changed("allow-empty-dirs") {
		s.allowEmpty = f.allowEmpty
	}

	out, err := outputRoot(input, f.out, cfg.OutputDir)
	if err != nil {
		return s, err
	}
	s.output = out
	return s, nil
}

// outputRoot picks the directory a run writes into: the flag, then the
// configured output_dir, then the outline's name in the working directory
func outputRoot(input, flag, configured string) (string, error) {
	if flag != "" {
		return config.ExpandPath(flag)
	}
	if configured != "" {
		return configured, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(cwd, outlineStem(input)), nil
}

// outlineStem is the outline's file name without its extension
func outlineStem(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if stem == "" || stem == "." {
		return materialize.Untitled
	}
	return stem
}

// NewGenerateCommand creates the generate subcommand
func NewGenerateCommand() *cobra.Command {
	var flags namingFlags
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate <outline-file>",
		Short: "Build a Markdown directory tree from an outline",
		Long: `Parse an indented outline and write it out as directories and
Markdown documents.

Examples:
  mdtree generate notes.txt
  mdtree generate notes.txt --out ~/vault/notes --mode alternative
  mdtree generate notes.txt --dry-run`,
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
			s.dryRun = dryRun

			log, cleanup := openLogger(cmd, cfg)
			defer cleanup()

			out := cmd.OutOrStdout()
			if isTerminal(out) {
				return generateInteractive(args[0], s, log)
			}
			return generatePlain(args[0], s, log, out)
		},
		SilenceUsage: true,
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report what would be written without touching the filesystem")

	return cmd
}

// generate parses input and materializes it, holding the output lock for
// the duration of a real run
func generate(input string, s settings, log *logger.Logger) (*materialize.Result, *tui.GenerateResult, error) {
	start := time.Now()
	log.RunStarted(input, s.output, s.mode.String(), s.dryRun)

	root, err := outline.ParseFile(input)
	if err != nil {
		log.RunFailed(err)
		return nil, nil, err
	}
	log.OutlineParsed(input, outline.Count(root), len(root.BodyLines))

	if !s.dryRun {
		unlock, err := lockOutput(s.output)
		if err != nil {
			log.RunFailed(err)
			return nil, nil, err
		}
		defer unlock()
	}

	res, err := materialize.Materialize(root, s.output, s.options(log))
	if err != nil {
		log.RunFailed(err)
		return res, nil, err
	}

	duration := time.Since(start)
	log.RunCompleted(res.DirsCreated, res.DocsWritten, res.Collisions, duration)

	return res, &tui.GenerateResult{
		Output:      s.output,
		Directories: res.DirsCreated,
		Documents:   res.DocsWritten,
		Collisions:  res.Collisions,
		Duration:    duration,
		DryRun:      s.dryRun,
	}, nil
}

func generatePlain(input string, s settings, log *logger.Logger, w io.Writer) error {
	header := "mdtree generate"
	if s.dryRun {
		header += " (dry run)"
	}
	fmt.Fprintln(w, styles.TitleStyle.Render(header))
	fmt.Fprintf(w, "%s → %s\n\n", styles.DimStyle.Render(input), styles.DimStyle.Render(s.output))

	_, result, err := generate(input, s, log)
	fmt.Fprint(w, tui.Summary(result, err))
	return err
}

func generateInteractive(input string, s settings, log *logger.Logger) error {
	m := tui.InitGenerateModel(fmt.Sprintf("Generating %s...", filepath.Base(input)))
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	// Run in a goroutine and send the result to the program
	done := make(chan error, 1)
	go func() {
		_, result, err := generate(input, s, log)
		p.Send(tui.GenerateMsg{Result: result, Err: err})
		done <- err
	}()

	_, uiErr := p.Run()
	// Quitting the display early must not cut a run short
	runErr := <-done
	if uiErr != nil {
		return fmt.Errorf("failed to run progress display: %w", uiErr)
	}
	return runErr
}
