// Package tui renders a live view of an auto-labeling run.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Brand color
var (
	primaryColor = lipgloss.Color("#0075ca")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	labeledStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)

// IssueStatusMsg reports progress on a single issue.
type IssueStatusMsg struct {
	Number  int
	Title   string
	Status  string // "labeled", "skipped", "created-label", "error"
	Labels  []string
	Message string // error text when Status is "error"
}

// ResultMsg carries the final rendered summary.
type ResultMsg struct {
	Success bool
	Output  string
}

// Model for the run view.
type Model struct {
	spinner    spinner.Model
	processed  int
	labeled    int
	created    int
	logs       []string
	quitting   bool
	err        error
	statusChan <-chan IssueStatusMsg
}

// NewModel creates a new run view fed by statusChan.
func NewModel(statusChan <-chan IssueStatusMsg) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		spinner:    s,
		statusChan: statusChan,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case IssueStatusMsg:
		stamp := time.Now().Format("15:04:05")
		switch msg.Status {
		case "labeled":
			m.processed++
			m.labeled++
			m.logs = append(m.logs, fmt.Sprintf("[%s] #%d %s → %s",
				stamp, msg.Number, msg.Title, strings.Join(msg.Labels, ", ")))
		case "created-label":
			m.created++
			m.logs = append(m.logs, fmt.Sprintf("[%s] created label %s",
				stamp, strings.Join(msg.Labels, ", ")))
		case "error":
			m.err = errors.New(msg.Message)
			m.logs = append(m.logs, fmt.Sprintf("[%s] error: %s", stamp, msg.Message))
		default:
			m.processed++
			m.logs = append(m.logs, fmt.Sprintf("[%s] #%d %s (no labels)",
				stamp, msg.Number, msg.Title))
		}
		return m, m.waitForActivity()

	case ResultMsg:
		// Print the final output before quitting so the user can see it
		if msg.Output != "" {
			fmt.Println("\n" + msg.Output)
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg, ok := <-m.statusChan:
			if !ok {
				return ResultMsg{Success: true}
			}
			return msg
		case <-time.After(60 * time.Second):
			// Timeout waiting for run activity
			return ResultMsg{
				Success: false,
				Output:  "run timed out waiting for activity",
			}
		}
	}
}

// View renders the run view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("labelbot auto-label run"))
	s.WriteString("\n\n")

	s.WriteString(m.spinner.View())
	s.WriteString(counterStyle.Render(fmt.Sprintf(" processed %d", m.processed)))
	s.WriteString(labeledStyle.Render(fmt.Sprintf("  labeled %d", m.labeled)))
	s.WriteString(counterStyle.Render(fmt.Sprintf("  labels created %d", m.created)))
	s.WriteString("\n\nActivity:\n")

	// Show last 8 log lines
	start := 0
	if len(m.logs) > 8 {
		start = len(m.logs) - 8
	}
	for _, line := range m.logs[start:] {
		s.WriteString(subtleStyle.Render(line) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	s.WriteString(subtleStyle.Render("\nPress q to quit\n"))

	return s.String()
}
