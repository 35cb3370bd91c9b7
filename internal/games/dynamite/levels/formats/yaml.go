package formats

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// YAMLLevel is the YAML form of a level file.
type YAMLLevel struct {
	Title  string            `yaml:"title,omitempty"`
	Hint   string            `yaml:"hint,omitempty"`
	Author string            `yaml:"author,omitempty"`
	Next   string            `yaml:"next"`
	Map    []string          `yaml:"map"`
	Legend map[string]string `yaml:"legend,omitempty"`
}

// ParseYAML parses a YAML level file. It shares validation with ParseText.
func ParseYAML(name string, data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	src := source{
		name:     name,
		rows:     yl.Map,
		legend:   make(map[rune]string, len(yl.Legend)),
		legLine:  map[rune]int{},
		metadata: make(map[string]string),
	}
	for key, def := range yl.Legend {
		if utf8.RuneCountInString(key) != 1 {
			return Level{}, loadErr(CodeBadLegend, 0, "legend key %q must be a single character", key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		src.legend[r] = def
	}
	for noun, value := range map[string]string{"title": yl.Title, "hint": yl.Hint, "author": yl.Author, "next": yl.Next} {
		if value != "" {
			src.metadata[noun] = value
		}
	}

	return build(src)
}
