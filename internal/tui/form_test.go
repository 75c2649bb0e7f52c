package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m formModel, text string) formModel {
	for _, r := range text {
		var msg tea.KeyMsg
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		next, _ := m.Update(msg)
		m = next.(formModel)
	}
	return m
}

func press(m formModel, keyType tea.KeyType) (formModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return next.(formModel), cmd
}

func TestFormFillsValuesInOrder(t *testing.T) {
	m := newFormModel(FormConfig{
		Title:     "Invite",
		Body:      "Hi {{name}} at {{time}}",
		Variables: []string{"name", "time"},
	})

	m = typeText(m, "Sam Lee")
	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.focus)

	m = typeText(m, "9am")
	m, cmd = press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.submitted)
	assert.Equal(t, map[string]string{"name": "Sam Lee", "time": "9am"}, m.Values())
}

func TestFormNavigationWraps(t *testing.T) {
	m := newFormModel(FormConfig{Variables: []string{"a", "b", "c"}})

	m, _ = press(m, tea.KeyShiftTab)
	assert.Equal(t, 2, m.focus)
	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, 0, m.focus)
	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, 1, m.focus)
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, 0, m.focus)
}

func TestFormEditing(t *testing.T) {
	m := newFormModel(FormConfig{
		Variables: []string{"name"},
		Initial:   map[string]string{"name": "Sa"},
	})

	m = typeText(m, "mx")
	m, _ = press(m, tea.KeyBackspace)
	assert.Equal(t, "Sam", m.Values()["name"])

	m, _ = press(m, tea.KeyCtrlU)
	assert.Equal(t, "", m.Values()["name"])
}

func TestFormCancel(t *testing.T) {
	m := newFormModel(FormConfig{Variables: []string{"name"}})

	m, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.True(t, m.cancelled)
	assert.False(t, m.submitted)
	assert.Equal(t, "", m.View())
}

func TestFormWithoutVariables(t *testing.T) {
	m := newFormModel(FormConfig{Title: "Static", Body: "No placeholders"})

	view := m.View()
	assert.Contains(t, view, "no variables")
	assert.Contains(t, view, "No placeholders")

	m = typeText(m, "ignored")
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.submitted)
	assert.Empty(t, m.Values())
}

func TestFormViewShowsPreview(t *testing.T) {
	m := newFormModel(FormConfig{
		Title:     "Invite",
		Body:      "Hi {{name}} at {{time}}",
		Variables: []string{"name", "time"},
	})
	m = typeText(m, "Sam")

	view := m.View()
	assert.Contains(t, view, "Generate: Invite")
	assert.Contains(t, view, "Hi Sam at {{time}}")
	assert.True(t, strings.Contains(view, "› name"))
}
