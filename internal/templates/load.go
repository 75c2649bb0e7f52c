package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTemplate reads a single starter template from disk.
func LoadTemplate(path string) (*Template, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("template path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	tmpl, err := parseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	tmpl.Source = path
	return tmpl, nil
}

// LoadTemplatesFromDir loads all .yaml/.yml templates from a directory.
// A missing directory yields no templates.
func LoadTemplatesFromDir(dir string) ([]*Template, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Template{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Template{}, nil
		}
		return nil, fmt.Errorf("read templates dir %s: %w", dir, err)
	}

	templates := make([]*Template, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		tmpl, err := LoadTemplate(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

// MarshalTemplate encodes a starter template as YAML.
func MarshalTemplate(tmpl *Template) ([]byte, error) {
	if tmpl == nil {
		return nil, fmt.Errorf("template is required")
	}
	return yaml.Marshal(tmpl)
}

func parseTemplate(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, err
	}

	tmpl.Name = strings.TrimSpace(tmpl.Name)
	tmpl.Title = strings.TrimSpace(tmpl.Title)
	if tmpl.Name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if tmpl.Title == "" {
		tmpl.Title = tmpl.Name
	}
	if strings.TrimSpace(tmpl.Body) == "" {
		return nil, fmt.Errorf("template body is required")
	}
	tmpl.Body = strings.TrimRight(tmpl.Body, "\n")

	return &tmpl, nil
}
