// Package templates provides the placeholder engine and starter template files.
package templates

// Template is a starter template read from YAML, either bundled with talk
// or found in a template search path.
type Template struct {
	Name   string   `yaml:"name" json:"name"`
	Title  string   `yaml:"title" json:"title"`
	Body   string   `yaml:"body" json:"body"`
	Tags   []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Source string   `yaml:"-" json:"source,omitempty"` // file path or "builtin"
}

// Variables returns the placeholder names used by the template body.
func (t *Template) Variables() []string {
	if t == nil {
		return []string{}
	}
	return ExtractVariables(t.Body)
}
