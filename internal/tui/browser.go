// Package tui provides the interactive browser over stored evaluation
// reports. It follows the bubbletea model/update/view architecture.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"specvet/internal/history"
	"specvet/internal/render"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// item adapts a history record to the list component.
type item struct {
	record history.Record
}

func (i item) Title() string {
	return fmt.Sprintf("%s  %s", i.record.Verdict, i.record.DocPath)
}

func (i item) Description() string {
	return fmt.Sprintf("%s  C %.2f  L %.2f  N %.2f  S %.2f  balance %.2f",
		i.record.CreatedAt, i.record.Completeness, i.record.Clarity,
		i.record.Constraints, i.record.Specificity, i.record.Balance)
}

func (i item) FilterValue() string {
	return i.record.DocPath + " " + i.record.Verdict
}

// Model is the browser state: a list of evaluations, plus an optional
// rendered detail view.
type Model struct {
	list    list.Model
	detail  string
	viewing bool
	width   int
	height  int
}

// New builds the browser over the given records.
func New(records []history.Record) Model {
	items := make([]list.Item, 0, len(records))
	for _, r := range records {
		items = append(items, item{record: r})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "specvet evaluations"
	l.Styles.Title = titleStyle
	return Model{list: l}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			if m.viewing {
				m.viewing = false
				m.detail = ""
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if m.viewing {
				return m, nil
			}
			selected, ok := m.list.SelectedItem().(item)
			if !ok {
				return m, nil
			}
			m.detail = renderDetail(selected.record, m.width)
			m.viewing = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.viewing {
		return m.detail + statusStyle.Render("esc: back  q: quit")
	}
	return m.list.View()
}

func renderDetail(r history.Record, width int) string {
	rep, err := r.Report()
	if err != nil {
		return fmt.Sprintf("cannot display %s: %v\n\n", r.EvalID, err)
	}
	return render.Terminal(rep, width)
}

// Run starts the browser and blocks until the user quits.
func Run(records []history.Record) error {
	p := tea.NewProgram(New(records), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
