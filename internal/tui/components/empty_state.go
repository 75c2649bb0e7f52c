// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/talk/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display (e.g., "📭", "🔍").
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actionable commands the user can run.
	Suggestions []Suggestion
}

// Suggestion represents a suggested command with description.
type Suggestion struct {
	// Command is the CLI command to run (e.g., "talk add").
	Command string
	// Description explains what the command does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines := []string{styleSet.Muted.Render(titleLine)}

	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "", styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			cmdLine := "  " + styleSet.Accent.Render(s.Command)
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// EmptyTemplates is shown when the store holds no templates.
func EmptyTemplates() EmptyState {
	return EmptyState{
		Icon:     "📭",
		Title:    "No templates yet",
		Subtitle: "Templates are reusable text with {{name}} placeholders.",
		Suggestions: []Suggestion{
			{Command: `talk add --title "Invite" --body "Hi {{name}}"`, Description: "create a template"},
			{Command: "talk import --builtin", Description: "add the starter templates"},
		},
	}
}

// EmptyTemplatesFiltered is shown when a search matches nothing.
func EmptyTemplatesFiltered(query string) EmptyState {
	return EmptyState{
		Icon:     "🔍",
		Title:    fmt.Sprintf("No templates match '%s'", query),
		Subtitle: "Try a shorter query or an id prefix.",
	}
}

// NoVariables is shown by the variable form for bodies without placeholders.
func NoVariables() EmptyState {
	return EmptyState{
		Title:    "This template has no variables.",
		Subtitle: "Press enter to generate the text as is.",
	}
}
