package templates

import (
	"fmt"
	"regexp"
	"strings"
)

// variablePattern matches a {{name}} placeholder. Names start with an ASCII
// letter or underscore and continue with letters, digits or underscores.
var variablePattern = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

var variableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ExtractVariables returns the distinct placeholder names in text, in the
// order each name first appears. Malformed placeholders are ignored.
func ExtractVariables(text string) []string {
	matches := variablePattern.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, match := range matches {
		name := match[1]
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// ReplaceVariables substitutes every placeholder in text with its value from
// values, or the empty string when no value is mapped. Substituted values are
// not scanned again.
func ReplaceVariables(text string, values map[string]string) string {
	return variablePattern.ReplaceAllStringFunc(text, func(token string) string {
		// token is always "{{" + name + "}}"
		return values[token[2:len(token)-2]]
	})
}

// IsValidVariableName reports whether name can be used inside a placeholder.
func IsValidVariableName(name string) bool {
	return variableNamePattern.MatchString(name)
}

// Placeholder formats name as a placeholder token.
func Placeholder(name string) string {
	return "{{" + name + "}}"
}

// InsertVariable inserts a placeholder for name into body at the byte offset
// and returns the new body with the caret offset just past the placeholder.
// Offsets outside the body are clamped.
func InsertVariable(body string, offset int, name string) (string, int, error) {
	name = strings.TrimSpace(name)
	if !IsValidVariableName(name) {
		return body, offset, fmt.Errorf("invalid variable name %q", name)
	}

	if offset < 0 {
		offset = 0
	}
	if offset > len(body) {
		offset = len(body)
	}

	token := Placeholder(name)
	return body[:offset] + token + body[offset:], offset + len(token), nil
}

// CommonVariables lists names offered as suggestions while editing.
var CommonVariables = []string{"name", "time", "date", "event", "location", "title"}

// Suggestion is a candidate variable name for insertion.
type Suggestion struct {
	Name string `json:"name"`
	Used bool   `json:"used"`
}

// SuggestVariables lists the variables already used by body followed by the
// common names, filtered by a case-insensitive substring query.
func SuggestVariables(body, query string) []Suggestion {
	query = strings.ToLower(strings.TrimSpace(query))

	used := ExtractVariables(body)
	suggestions := make([]Suggestion, 0, len(used)+len(CommonVariables))
	seen := make(map[string]struct{}, len(used)+len(CommonVariables))

	add := func(name string, inBody bool) {
		if _, exists := seen[name]; exists {
			return
		}
		seen[name] = struct{}{}
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			return
		}
		suggestions = append(suggestions, Suggestion{Name: name, Used: inBody})
	}

	for _, name := range used {
		add(name, true)
	}
	for _, name := range CommonVariables {
		add(name, false)
	}

	return suggestions
}

// MissingVariables returns the names in text with no non-empty value in values.
func MissingVariables(text string, values map[string]string) []string {
	missing := make([]string, 0)
	for _, name := range ExtractVariables(text) {
		if values[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
