package templates

import "fmt"

// RenderTemplate substitutes vars into the template body.
func RenderTemplate(tmpl *Template, vars map[string]string) (string, error) {
	if tmpl == nil {
		return "", fmt.Errorf("template is required")
	}
	return ReplaceVariables(tmpl.Body, vars), nil
}
