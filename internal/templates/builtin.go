package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinSource marks templates bundled with the binary.
const BuiltinSource = "builtin"

// LoadBuiltinTemplates returns the starter templates bundled with talk,
// sorted by name.
func LoadBuiltinTemplates() ([]*Template, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin templates: %w", err)
	}

	builtins := make([]*Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile(path.Join("builtin", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read builtin template %s: %w", entry.Name(), err)
		}
		tmpl, err := parseTemplate(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin template %s: %w", entry.Name(), err)
		}
		tmpl.Source = BuiltinSource
		builtins = append(builtins, tmpl)
	}

	sort.Slice(builtins, func(i, j int) bool {
		return builtins[i].Name < builtins[j].Name
	})
	return builtins, nil
}
