package md

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/k1LoW/slidefmt"
)

var simpleKeyValueRe = regexp.MustCompile(`^(\w+):\s*(.+)$`)

type frontmatter struct {
	entries []*entry
	// values holds the scalar values of the top level keys.
	values map[string]string
}

// entry is a top level key together with its raw lines, continuation lines included.
type entry struct {
	key   string
	lines []string
}

func (fm *frontmatter) entry(key string) *entry {
	for _, e := range fm.entries {
		if e.key == key {
			return e
		}
	}
	return nil
}

// extractFrontmatter splits a leading ---delimited block off lines.
// It returns a nil frontmatter when the document does not start with one.
func extractFrontmatter(lines []string) (*frontmatter, []string) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, lines
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, lines
	}
	fm, ok := parseFrontmatter(lines[1:end])
	if !ok {
		return nil, lines
	}
	return fm, lines[end+1:]
}

func parseFrontmatter(lines []string) (*frontmatter, bool) {
	fm := &frontmatter{
		values: map[string]string{},
	}
	var cur *entry
	for _, line := range lines {
		if line != "" && line[0] != ' ' && line[0] != '\t' && line[0] != '#' {
			if k, _, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(k) != "" {
				cur = &entry{key: strings.TrimSpace(k)}
				fm.entries = append(fm.entries, cur)
			}
		}
		if cur != nil {
			cur.lines = append(cur.lines, line)
		}
	}
	for _, e := range fm.entries {
		e.lines = slidefmt.TrimBlankLines(e.lines)
	}

	if m, ok := slidefmt.DecodeFrontmatter(lines); ok {
		for k, v := range m {
			switch v.(type) {
			case string, bool, int, int64, uint64, float64:
				fm.values[k] = fmt.Sprint(v)
			}
		}
		return fm, true
	}

	// not valid YAML, fall back to simple key: value lines
	for _, line := range lines {
		m := simpleKeyValueRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fm.values[m[1]] = slidefmt.Unquote(strings.TrimSpace(m[2]))
	}
	return fm, len(fm.values) > 0
}
