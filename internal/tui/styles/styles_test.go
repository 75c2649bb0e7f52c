package styles

import "testing"

func TestStylesForTheme(t *testing.T) {
	if got := StylesForTheme("high-contrast").Theme.Name; got != "high-contrast" {
		t.Fatalf("expected high-contrast theme, got %q", got)
	}
	if got := StylesForTheme("unknown").Theme.Name; got != DefaultTheme.Name {
		t.Fatalf("expected fallback to default theme, got %q", got)
	}
}

func TestThemesHaveAllTokens(t *testing.T) {
	for name, theme := range Themes {
		tokens := theme.Tokens
		for role, value := range map[string]string{
			"text":        tokens.Text,
			"muted":       tokens.TextMuted,
			"accent":      tokens.Accent,
			"focus":       tokens.Focus,
			"placeholder": tokens.Placeholder,
			"success":     tokens.Success,
			"error":       tokens.Error,
			"info":        tokens.Info,
		} {
			if value == "" {
				t.Errorf("theme %s missing %s token", name, role)
			}
		}
	}
}
