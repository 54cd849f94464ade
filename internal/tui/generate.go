package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// GenerateResult holds the outcome of a generate run
type GenerateResult struct {
	Output      string
	Directories int
	Documents   int
	Collisions  int
	Duration    time.Duration
	DryRun      bool
}

// generateModel is the Bubble Tea model for the generate progress display
type generateModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *GenerateResult
	err      error
}

// GenerateMsg is sent when the run completes
type GenerateMsg struct {
	Result *GenerateResult
	Err    error
}

// InitGenerateModel creates a new generate progress model
func InitGenerateModel(status string) generateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return generateModel{
		spinner: s,
		status:  status,
	}
}

func (m generateModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case GenerateMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m generateModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}
	return Summary(m.result, m.err)
}

// Err returns the run error once the model has finished
func (m generateModel) Err() error {
	return m.err
}

// Summary renders the final lines of a run, shared by the spinner view and
// plain output
func Summary(r *GenerateResult, err error) string {
	if err != nil {
		return errorStyle.Render("✗ Generate failed: "+err.Error()) + "\n"
	}
	if r == nil {
		return ""
	}

	verb := "Wrote"
	if r.DryRun {
		verb = "Would write"
	}

	if r.Directories == 0 && r.Documents == 0 {
		return successStyle.Render("✓ Nothing to write") + "\n"
	}

	msg := successStyle.Render(fmt.Sprintf("✓ %s %d document(s) in %d director(ies)", verb, r.Documents, r.Directories))
	if r.Collisions > 0 {
		msg += ", " + warningStyle.Render(fmt.Sprintf("%d renamed to avoid collisions", r.Collisions))
	}
	msg += "\n" + labelStyle.Render("  → ") + highlightStyle.Render(r.Output)
	msg += "\n" + helpStyle.Render(fmt.Sprintf("Completed in %v", r.Duration.Round(time.Millisecond))) + "\n"
	return msg
}
