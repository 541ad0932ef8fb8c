package slidefmt

import (
	"strings"

	"github.com/goccy/go-yaml"
)

// DecodeFrontmatter decodes the lines of a delimited frontmatter block as a YAML mapping.
// ok is true when the block is blank or decodes to a non-empty mapping.
func DecodeFrontmatter(lines []string) (_ map[string]any, ok bool) {
	src := strings.Join(lines, "\n")
	if strings.TrimSpace(src) == "" {
		return map[string]any{}, true
	}
	m := map[string]any{}
	if err := yaml.UnmarshalWithOptions([]byte(src), &m, yaml.AllowDuplicateMapKey()); err != nil {
		return nil, false
	}
	if len(m) == 0 {
		return nil, false
	}
	return m, true
}
