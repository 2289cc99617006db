package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmehra2102/TaskList/internal/client"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyles = map[string]lipgloss.Style{
		"todo":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"doing": lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		"done":  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// SnapshotMsg carries a session transition into the program.
type SnapshotMsg client.Snapshot

// Controller is the subset of client.Session the model drives.
type Controller interface {
	Start()
	SetSearch(term string)
	Retry()
}

type Model struct {
	session  Controller
	input    textinput.Model
	snapshot client.Snapshot
	width    int
	quitting bool
}

func NewModel(session Controller) *Model {
	input := textinput.New()
	input.Placeholder = "Search tasks..."
	input.CharLimit = 100
	input.Focus()

	return &Model{
		session: session,
		input:   input,
	}
}

func (m *Model) Init() tea.Cmd {
	m.session.Start()
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+r":
			if m.snapshot.State == client.StateError {
				return m, m.retry()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.snapshot = client.Snapshot(msg)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.session.SetSearch(after)
	}
	return m, cmd
}

// retry runs off the update loop so session notifications can be delivered.
func (m *Model) retry() tea.Cmd {
	return func() tea.Msg {
		m.session.Retry()
		return nil
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	view := client.Render(m.snapshot)
	switch view.Kind {
	case client.ViewLoading:
		b.WriteString(loadingStyle.Render(view.Message))
	case client.ViewError:
		b.WriteString(errorStyle.Render(view.Message))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("press ctrl+r to retry"))
	case client.ViewEmpty:
		b.WriteString(emptyStyle.Render(view.Message))
	case client.ViewList:
		for _, t := range view.Tasks {
			style, ok := statusStyles[t.Status]
			if !ok {
				style = lipgloss.NewStyle()
			}
			fmt.Fprintf(&b, "%s - %s\n", t.Title, style.Render(t.Status))
		}
		if p := m.snapshot.Pagination; p != nil {
			b.WriteString(helpStyle.Render(fmt.Sprintf("page %d of %d, %d tasks", p.CurrentPage, p.TotalPages, p.TotalItems)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("esc: quit"))
	return b.String()
}
