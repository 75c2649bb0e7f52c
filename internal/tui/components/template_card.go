package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/opencode-ai/talk/internal/models"
	"github.com/opencode-ai/talk/internal/templates"
	"github.com/opencode-ai/talk/internal/tui/styles"
)

const cardPreviewLines = 4

// TemplateCard renders a template summary.
type TemplateCard struct {
	Template *models.Template
	Width    int
	Now      time.Time
}

// Render renders the card.
func (c TemplateCard) Render(styleSet styles.Styles) string {
	if c.Template == nil {
		return ""
	}
	tmpl := c.Template

	header := styleSet.Title.Render(tmpl.Title) + "  " + styleSet.Muted.Render(shortID(tmpl.ID))
	lines := []string{header}

	preview := strings.Split(tmpl.Body, "\n")
	truncated := len(preview) > cardPreviewLines
	if truncated {
		preview = preview[:cardPreviewLines]
	}
	for _, line := range preview {
		lines = append(lines, HighlightPlaceholders(line, styleSet))
	}
	if truncated {
		lines = append(lines, styleSet.Muted.Render("…"))
	}

	vars := templates.ExtractVariables(tmpl.Body)
	footer := fmt.Sprintf("%d variable(s)", len(vars))
	if len(vars) > 0 {
		footer += ": " + strings.Join(vars, ", ")
	}
	if !c.Now.IsZero() {
		footer += " · updated " + FormatAge(c.Now.Sub(tmpl.UpdatedAt))
	}
	lines = append(lines, styleSet.Muted.Render(footer))

	card := styleSet.Card
	if c.Width > 0 {
		card = card.Width(c.Width)
	}
	return card.Render(strings.Join(lines, "\n"))
}

// HighlightPlaceholders styles every valid placeholder in text.
func HighlightPlaceholders(text string, styleSet styles.Styles) string {
	names := templates.ExtractVariables(text)
	if len(names) == 0 {
		return styleSet.Text.Render(text)
	}
	highlighted := make(map[string]string, len(names))
	for _, name := range names {
		highlighted[name] = styleSet.Placeholder.Render(templates.Placeholder(name))
	}
	return templates.ReplaceVariables(text, highlighted)
}

// FormatAge renders a duration as a coarse age like "5m ago".
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
