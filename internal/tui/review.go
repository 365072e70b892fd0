// Package tui provides the interactive outstanding-task review screen,
// built on bubbletea's model/update/view loop. The list shows every entry
// in the outstanding file; space toggles completion, `s` saves, `q` quits.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/daybook/internal/outstanding"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	statusStyle = lipgloss.NewStyle().Faint(true)
	helpStyle   = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
)

// taskItem implements list.Item for one outstanding entry.
type taskItem struct {
	index int
	text  string
	done  bool
}

func (i taskItem) FilterValue() string { return i.text }
func (i taskItem) Title() string       { return i.text }
func (i taskItem) Description() string {
	if i.done {
		return doneStyle.Render("● done")
	}
	return openStyle.Render("● open")
}

// Model is the review screen state.
type Model struct {
	file   *outstanding.File
	list   list.Model
	dirty  bool
	status string
	quit   bool
}

// NewModel builds the review screen over a loaded outstanding file.
func NewModel(file *outstanding.File) Model {
	items := make([]list.Item, 0, len(file.Tasks()))
	for i, task := range file.Tasks() {
		items = append(items, taskItem{index: i, text: task.Text, done: task.Done})
	}
	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = fmt.Sprintf("Outstanding tasks (%d open)", file.Count())
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	return Model{file: file, list: l}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		// Don't intercept keys while the user is filtering.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case " ":
			return m.toggleSelected(), nil
		case "s":
			return m.save(), nil
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) toggleSelected() Model {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return m
	}
	m.file.Toggle(item.index)
	item.done = !item.done
	m.list.SetItem(m.list.Index(), item)
	m.dirty = true
	m.status = ""
	m.list.Title = fmt.Sprintf("Outstanding tasks (%d open)", m.file.Count())
	return m
}

func (m Model) save() Model {
	if err := m.file.Save(); err != nil {
		m.status = "save failed: " + err.Error()
		return m
	}
	m.dirty = false
	m.status = "saved " + m.file.Path()
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}
	footer := helpStyle.Render("space toggle • s save • q quit")
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "\n" + footer
	} else if m.dirty {
		footer = statusStyle.Render("unsaved changes") + "\n" + footer
	}
	return m.list.View() + "\n" + footer
}

// Run loads the outstanding file at path and blocks in the review screen
// until the user quits.
func Run(path string) error {
	file, err := outstanding.Load(path)
	if err != nil {
		return err
	}
	p := tea.NewProgram(NewModel(file), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: run review: %w", err)
	}
	return nil
}
