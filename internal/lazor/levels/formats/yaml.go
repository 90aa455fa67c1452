package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML board file.
func ParseYAML(data []byte, source string) (Level, error) {
	var doc boardDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return doc.level(source)
}
