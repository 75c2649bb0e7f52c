package templates

import (
	"os"
	"path/filepath"
)

// userHomeDir is replaced in tests.
var userHomeDir = os.UserHomeDir

// TemplateSearchPaths returns starter template directories, highest
// precedence first: the project's .talk/templates, the user config
// directory, then the system share directory.
func TemplateSearchPaths(projectDir string) []string {
	paths := make([]string, 0, 3)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".talk", "templates"))
	}
	if home, err := userHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "talk", "templates"))
	}
	return append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "talk", "templates"))
}

// LoadTemplatesFromSearchPaths loads starter templates from every search
// path and then the builtins. The first template seen with a given name wins.
func LoadTemplatesFromSearchPaths(projectDir string) ([]*Template, error) {
	var groups [][]*Template
	for _, dir := range TemplateSearchPaths(projectDir) {
		found, err := LoadTemplatesFromDir(dir)
		if err != nil {
			return nil, err
		}
		groups = append(groups, found)
	}

	builtins, err := LoadBuiltinTemplates()
	if err != nil {
		return nil, err
	}
	groups = append(groups, builtins)

	return mergeByName(groups...), nil
}

func mergeByName(groups ...[]*Template) []*Template {
	seen := make(map[string]struct{})
	merged := make([]*Template, 0)
	for _, group := range groups {
		for _, tmpl := range group {
			if _, exists := seen[tmpl.Name]; exists {
				continue
			}
			seen[tmpl.Name] = struct{}{}
			merged = append(merged, tmpl)
		}
	}
	return merged
}
