package slidefmt

import (
	"fmt"
	"strings"
)

const placeholderSlide = "# Slide"

var columnLabels = map[string]string{
	"::right::": "**Right column**",
	"::left::":  "**Left column**",
	"::cols::":  "**Columns**",
}

// Sanitize collapses markdown into a single slide that always passes Validate.
//
// Only recognized deck keys survive in the deck frontmatter. Every slide body is
// flattened in order and anything that could be read as a directive is turned
// into inert text: layout headings become "## <LAYOUT> SLIDE", slide-key lines
// become list items, column markers become bold labels, bare --- lines become ----,
// and an unterminated fence is closed.
func Sanitize(markdown string) string {
	doc := Parse(markdown)

	var deck []string
	keep := false
	for _, line := range doc.Frontmatter {
		if isIndented(line) || isBlank(line) {
			if keep && !isBlank(line) {
				deck = append(deck, line)
			}
			continue
		}
		k, _, ok := parseKeyValue(line)
		keep = ok && IsDeckKey(k)
		if keep {
			deck = append(deck, line)
		}
	}

	var body []string
	for _, s := range doc.Slides {
		lines := sanitizeLines(s)
		if len(lines) == 0 {
			continue
		}
		if len(body) > 0 {
			body = append(body, "")
		}
		body = append(body, lines...)
	}
	if len(body) == 0 {
		body = []string{placeholderSlide}
	}

	var b strings.Builder
	if len(deck) > 0 || isKeyValue(body[0]) {
		b.WriteString("---\n")
		for _, line := range deck {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("---\n\n")
	}
	b.WriteString(strings.Join(body, "\n"))
	b.WriteString("\n")
	return b.String()
}

func sanitizeLines(s *Slide) []string {
	var out []string
	started := false
	f := &Fence{}
	for _, line := range s.Content {
		inFence := f.Open()
		if f.Feed(line) || inFence {
			started = true
			out = append(out, line)
			continue
		}
		if !started && !isBlank(line) {
			started = true
			if l, ok := layoutHeading(line); ok {
				out = append(out, fmt.Sprintf("## %s SLIDE", strings.ToUpper(string(l))))
				continue
			}
		}
		if _, _, ok := slideKeyLine(line); ok {
			out = append(out, "- "+strings.TrimSpace(line))
			continue
		}
		if m, ok := columnMarker(line); ok {
			out = append(out, columnLabels[m])
			continue
		}
		if isSeparator(line) {
			out = append(out, "----")
			continue
		}
		out = append(out, line)
	}
	if f.Open() {
		out = append(out, f.token)
	}
	return TrimBlankLines(out)
}
