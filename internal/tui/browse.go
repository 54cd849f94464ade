package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gerunddev/mdtree/internal/inspect"
	"github.com/gerunddev/mdtree/internal/styles"
)

const (
	pathColumnWidth  = 40
	titleColumnWidth = 40
)

// LoadFunc scans the browsed tree
type LoadFunc func() ([]inspect.Entry, error)

// RenderFunc renders a document for display at the given width
type RenderFunc func(path string, width int) (string, error)

// BrowseMsg is sent when the tree has been scanned
type BrowseMsg struct {
	Entries []inspect.Entry
	Err     error
}

// DocumentMsg is sent when a document has been rendered
type DocumentMsg struct {
	Path    string
	Content string
	Err     error
}

type browseModel struct {
	table      table.Model
	viewport   viewport.Model
	entries    []inspect.Entry
	err        error
	ready      bool
	showingDoc bool
	docErr     error
	selected   *inspect.Entry
	width      int
	height     int
	root       string
	load       LoadFunc
	render     RenderFunc
}

// InitBrowseModel creates a new document browser over root
func InitBrowseModel(root string, load LoadFunc, render RenderFunc) browseModel {
	columns := []table.Column{
		{Title: "Path", Width: pathColumnWidth},
		{Title: "Title", Width: titleColumnWidth},
		{Title: "Kind", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = styles.HeaderStyle.
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true)
	ts.Selected = styles.SelectedStyle
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return browseModel{
		table:    t,
		viewport: vp,
		root:     root,
		load:     load,
		render:   render,
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.loadEntries()
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-10, 3))
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-6, 3)

	case tea.KeyMsg:
		if m.showingDoc {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q", "esc":
				m.showingDoc = false
				return m, nil
			default:
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.loadEntries()
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.entries) && m.entries[idx].Doc != "" {
				m.selected = &m.entries[idx]
				m.showingDoc = true
				m.docErr = nil
				m.viewport.SetContent(labelStyle.Render("Rendering..."))
				return m, m.renderDocument(m.selected.Doc)
			}
			return m, nil
		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case BrowseMsg:
		m.ready = true
		m.entries = msg.Entries
		m.err = msg.Err
		m.table.SetRows(rows(m.entries))
		return m, nil

	case DocumentMsg:
		if m.selected == nil || msg.Path != m.selected.Doc {
			return m, nil
		}
		m.docErr = msg.Err
		m.viewport.SetContent(msg.Content)
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mdtree browser"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(m.root))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready {
		b.WriteString(labelStyle.Render("Scanning..."))
		b.WriteString("\n")
		return b.String()
	}

	if m.showingDoc && m.selected != nil {
		b.WriteString(labelStyle.Render("Document: "))
		b.WriteString(valueStyle.Render(m.selected.Title))
		b.WriteString("\n\n")
		if m.docErr != nil {
			b.WriteString(errorStyle.Render("✗ " + m.docErr.Error()))
		} else {
			b.WriteString(m.viewport.View())
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("Entries: %d", len(m.entries))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter open • r rescan • q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m browseModel) loadEntries() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		if load == nil {
			return BrowseMsg{}
		}
		entries, err := load()
		return BrowseMsg{Entries: entries, Err: err}
	}
}

func (m browseModel) renderDocument(path string) tea.Cmd {
	render := m.render
	width := m.viewport.Width - 4
	return func() tea.Msg {
		if render == nil {
			return DocumentMsg{Path: path}
		}
		content, err := render(path, width)
		return DocumentMsg{Path: path, Content: content, Err: err}
	}
}

func rows(entries []inspect.Entry) []table.Row {
	out := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		kind := "document"
		path := strings.Repeat("  ", e.Depth-1) + e.Name
		if e.Dir {
			kind = "directory"
			path += "/"
		}
		out = append(out, table.Row{
			runewidth.Truncate(path, pathColumnWidth, "…"),
			runewidth.Truncate(e.Title, titleColumnWidth, "…"),
			kind,
		})
	}
	return out
}
