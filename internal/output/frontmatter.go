package output

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header written before each document of a batch
// bundle.
type Frontmatter struct {
	Source string `yaml:"source"`
	Title  string `yaml:"title"`
}

func (f Frontmatter) Render() (string, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return "", err
	}
	return "---\n" + string(data) + "---\n\n", nil
}

// Document returns the bundle entry for md: the optional frontmatter, the
// trimmed Markdown and a blank separator line.
func Document(md string, fm *Frontmatter) (string, error) {
	var b strings.Builder
	if fm != nil {
		head, err := fm.Render()
		if err != nil {
			return "", err
		}
		b.WriteString(head)
	}
	b.WriteString(strings.TrimSpace(md))
	b.WriteString("\n\n")
	return b.String(), nil
}
