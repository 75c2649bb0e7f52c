package cli

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/talk/internal/templates"
)

// parseVars parses --var entries. Each entry is one key=value pair; the value
// is everything after the first '=' and is kept verbatim.
func parseVars(entries []string) (map[string]string, error) {
	vars := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid variable %q (expected key=value)", entry)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid variable %q (empty key)", entry)
		}
		if !templates.IsValidVariableName(key) {
			return nil, fmt.Errorf("invalid variable name %q", key)
		}
		vars[key] = value
	}
	return vars, nil
}
