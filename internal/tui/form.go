// Package tui implements the interactive variable form.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/talk/internal/tui/components"
	"github.com/opencode-ai/talk/internal/tui/styles"
)

// ErrFormCancelled is returned when the user leaves the form without confirming.
var ErrFormCancelled = errors.New("variable form cancelled")

// FormConfig configures RunVariableForm.
type FormConfig struct {
	// Title is the template title shown in the header.
	Title string
	// Body is the template body, previewed with the current values.
	Body string
	// Variables are the names to fill, in display order.
	Variables []string
	// Initial pre-fills values, e.g. from --var flags.
	Initial map[string]string
	// Theme names a palette from styles.Themes.
	Theme string

	Input  io.Reader
	Output io.Writer
}

// RunVariableForm asks for a value per variable and returns the mapping.
func RunVariableForm(cfg FormConfig) (map[string]string, error) {
	opts := []tea.ProgramOption{}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	program := tea.NewProgram(newFormModel(cfg), opts...)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("run variable form: %w", err)
	}

	m, ok := final.(formModel)
	if !ok {
		return nil, fmt.Errorf("unexpected form model %T", final)
	}
	if !m.submitted {
		return nil, ErrFormCancelled
	}
	return m.Values(), nil
}

type formModel struct {
	title     string
	body      string
	names     []string
	values    [][]rune
	focus     int
	submitted bool
	cancelled bool
	width     int
	styles    styles.Styles
}

func newFormModel(cfg FormConfig) formModel {
	values := make([][]rune, len(cfg.Variables))
	for i, name := range cfg.Variables {
		values[i] = []rune(cfg.Initial[name])
	}
	return formModel{
		title:  cfg.Title,
		body:   cfg.Body,
		names:  append([]string(nil), cfg.Variables...),
		values: values,
		styles: styles.StylesForTheme(cfg.Theme),
	}
}

// Values returns the current mapping, one entry per variable.
func (m formModel) Values() map[string]string {
	out := make(map[string]string, len(m.names))
	for i, name := range m.names {
		out[name] = string(m.values[i])
	}
	return out
}

func (m formModel) Init() tea.Cmd {
	return nil
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m formModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "ctrl+s":
		m.submitted = true
		return m, tea.Quit
	case "enter":
		if len(m.names) == 0 || m.focus == len(m.names)-1 {
			m.submitted = true
			return m, tea.Quit
		}
		m.focus++
		return m, nil
	case "tab", "down":
		if len(m.names) > 0 {
			m.focus = (m.focus + 1) % len(m.names)
		}
		return m, nil
	case "shift+tab", "up":
		if len(m.names) > 0 {
			m.focus = (m.focus - 1 + len(m.names)) % len(m.names)
		}
		return m, nil
	}

	if len(m.names) == 0 {
		return m, nil
	}

	current := m.values[m.focus]
	switch msg.Type {
	case tea.KeyBackspace:
		if len(current) > 0 {
			current = current[:len(current)-1]
		}
	case tea.KeyCtrlU:
		current = current[:0]
	case tea.KeySpace:
		current = append(current, ' ')
	case tea.KeyRunes:
		current = append(current, msg.Runes...)
	}
	m.values[m.focus] = current
	return m, nil
}

func (m formModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	lines := []string{
		m.styles.Title.Render("Generate: " + m.title),
		"",
	}

	if len(m.names) == 0 {
		lines = append(lines, components.NoVariables().Render(m.styles))
	}

	for i, name := range m.names {
		label := m.styles.Label.Render(name)
		input := m.styles.Input
		if i == m.focus {
			label = m.styles.Focus.Render("› " + name)
			input = m.styles.InputFocused
		}
		if m.width > 4 {
			input = input.Width(m.width - 4)
		}
		value := string(m.values[i])
		if i == m.focus {
			value += "▏"
		}
		lines = append(lines, label, input.Render(value))
	}

	if m.body != "" {
		lines = append(lines, "", m.styles.Muted.Render("Preview:"), m.preview())
	}

	lines = append(lines, "", m.styles.Muted.Render("tab/↓ next · shift+tab/↑ previous · enter confirm · esc cancel"))
	return strings.Join(lines, "\n") + "\n"
}
