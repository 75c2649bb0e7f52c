package tui

import (
	"github.com/opencode-ai/talk/internal/templates"
	"github.com/opencode-ai/talk/internal/tui/components"
)

// preview renders the body with filled values substituted and unfilled
// placeholders highlighted.
func (m formModel) preview() string {
	values := m.Values()
	filled := make(map[string]string, len(values))
	for name, value := range values {
		if value == "" {
			filled[name] = templates.Placeholder(name)
			continue
		}
		filled[name] = value
	}
	return components.HighlightPlaceholders(templates.ReplaceVariables(m.body, filled), m.styles)
}
