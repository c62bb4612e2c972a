package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/chainlib/foundation/chain"
	"github.com/msto63/chainlib/internal/shell"
)

// maxVisibleCompletions limits the completion list below the input
const maxVisibleCompletions = 8

// Entry is one executed command in the transcript
type Entry struct {
	Input  string
	Output string
	Failed bool
}

// Model is the interactive console: an input line with live completions
// above a transcript of executed commands
type Model[E any] struct {
	engine   *chain.Engine[E]
	executor E
	title    string

	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model

	entries     []Entry
	completions []chain.Completion
	selected    int
}

// NewModel creates a console executing commands as executor
func NewModel[E any](engine *chain.Engine[E], executor E, title string) Model[E] {
	ti := textinput.New()
	ti.Placeholder = "type a command, tab completes"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Focus()

	m := Model[E]{
		engine:   engine,
		executor: executor,
		title:    title,
		input:    ti,
	}
	m.refreshCompletions()
	return m
}

// Entries returns the transcript
func (m Model[E]) Entries() []Entry {
	return m.entries
}

// Completions returns the completions for the current input
func (m Model[E]) Completions() []chain.Completion {
	return m.completions
}

// Value returns the current input
func (m Model[E]) Value() string {
	return m.input.Value()
}

// Init initializes the model
func (m Model[E]) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model[E]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.execute()
			return m, nil

		case "tab":
			m.applyCompletion()
			return m, nil

		case "up":
			if len(m.completions) > 0 {
				m.selected = (m.selected - 1 + len(m.completions)) % len(m.completions)
			}
			return m, nil

		case "down":
			if len(m.completions) > 0 {
				m.selected = (m.selected + 1) % len(m.completions)
			}
			return m, nil

		case "ctrl+l":
			m.entries = nil
			m.updateContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		h := max(1, msg.Height-maxVisibleCompletions-7)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.input.Width = max(10, msg.Width-6)
		m.updateContent()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.refreshCompletions()

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// textBeforeCursor returns the input up to the cursor
func (m *Model[E]) textBeforeCursor() (before, after string) {
	runes := []rune(m.input.Value())
	pos := min(m.input.Position(), len(runes))
	return string(runes[:pos]), string(runes[pos:])
}

func (m *Model[E]) refreshCompletions() {
	before, _ := m.textBeforeCursor()
	m.completions = m.engine.Complete(m.executor, before)
	if m.selected >= len(m.completions) {
		m.selected = 0
	}
}

// applyCompletion replaces the text from the completion offset to the
// cursor with the selected completion
func (m *Model[E]) applyCompletion() {
	if len(m.completions) == 0 {
		return
	}
	before, after := m.textBeforeCursor()
	c := m.completions[m.selected]
	if c.Offset > len(before) {
		return
	}

	head := before[:c.Offset] + c.Text
	if after == "" {
		head += " "
	}
	m.input.SetValue(head + after)
	m.input.SetCursor(len([]rune(head)))
	m.selected = 0
	m.refreshCompletions()
}

func (m *Model[E]) execute() {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return
	}

	entry := Entry{Input: line}
	result, err := m.engine.Execute(m.executor, line)
	if err != nil {
		entry.Output = shell.FormatError(err)
		entry.Failed = true
	} else {
		entry.Output = shell.FormatResult(result)
	}
	m.entries = append(m.entries, entry)

	m.input.Reset()
	m.selected = 0
	m.refreshCompletions()
	m.updateContent()
}

func (m *Model[E]) updateContent() {
	if !m.ready {
		return
	}
	var content strings.Builder
	for _, e := range m.entries {
		content.WriteString(CommandStyle.Render("> " + e.Input))
		content.WriteString("\n")
		if e.Output != "" {
			if e.Failed {
				content.WriteString(RenderError(e.Output))
			} else {
				content.WriteString(OutputStyle.Render(e.Output))
			}
			content.WriteString("\n")
		}
	}
	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// View renders the UI
func (m Model[E]) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder
	s.WriteString(TitleStyle.Render(m.title))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(FocusedInputStyle.Render(m.input.View()))
	s.WriteString("\n")
	s.WriteString(m.renderCompletions())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model[E]) renderCompletions() string {
	if len(m.completions) == 0 {
		return SubtitleStyle.Render("  no completions")
	}

	start := 0
	if m.selected >= maxVisibleCompletions {
		start = m.selected - maxVisibleCompletions + 1
	}
	end := min(len(m.completions), start+maxVisibleCompletions)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == m.selected {
			lines = append(lines, SelectedCompletionStyle.Render("> "+m.completions[i].Text))
		} else {
			lines = append(lines, CompletionStyle.Render("  "+m.completions[i].Text))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model[E]) renderFooter() string {
	help := "Enter: run • Tab: complete • Up/Down: select • Ctrl+L: clear • Ctrl+C: quit"
	count := fmt.Sprintf("%d completions", len(m.completions))

	return StatusBarStyle.Width(m.width).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			help,
			strings.Repeat(" ", max(0, m.width-len(help)-len(count)-4)),
			count,
		),
	)
}
