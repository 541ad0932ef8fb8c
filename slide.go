package slidefmt

import (
	"regexp"
	"strings"
)

// Layout is a Slidev slide layout name.
type Layout string

const (
	LayoutCover       Layout = "cover"
	LayoutCenter      Layout = "center"
	LayoutDefault     Layout = "default"
	LayoutIntro       Layout = "intro"
	LayoutSection     Layout = "section"
	LayoutTwoCols     Layout = "two-cols"
	LayoutImageRight  Layout = "image-right"
	LayoutImageLeft   Layout = "image-left"
	LayoutImage       Layout = "image"
	LayoutStatement   Layout = "statement"
	LayoutQuote       Layout = "quote"
	LayoutIframe      Layout = "iframe"
	LayoutUnspecified Layout = ""
)

// Layouts is the closed set of layouts recognized by the normalizer.
var Layouts = []Layout{
	LayoutCover,
	LayoutCenter,
	LayoutDefault,
	LayoutIntro,
	LayoutSection,
	LayoutTwoCols,
	LayoutImageRight,
	LayoutImageLeft,
	LayoutImage,
	LayoutStatement,
	LayoutQuote,
	LayoutIframe,
}

// LookupLayout returns the layout whose name equals s ignoring case.
func LookupLayout(s string) (Layout, bool) {
	s = strings.TrimSpace(s)
	for _, l := range Layouts {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return LayoutUnspecified, false
}

// Slide scoped keys in canonical frontmatter order.
const (
	KeyLayout     = "layout"
	KeyClass      = "class"
	KeyBackground = "background"
	KeyTransition = "transition"
)

// SlideKeys are the recognized slide frontmatter keys in the order they are emitted.
var SlideKeys = []string{KeyLayout, KeyClass, KeyBackground, KeyTransition}

// DeckKeys are the recognized deck (headmatter) keys. Matching is case-insensitive.
var DeckKeys = []string{
	"theme",
	"title",
	"info",
	"author",
	"description",
	"keywords",
	"transition",
	"class",
	"favicon",
	"download",
	"downloadFileName",
	"exportFileName",
	"colorSchema",
	"fonts",
	"themeConfig",
	"highlighter",
	"lineNumbers",
	"presenter",
	"record",
	"defaults",
	"canvasWidth",
	"remote",
}

// ColumnMarkers are the two-cols slot markers.
var ColumnMarkers = []string{"::right::", "::left::", "::cols::"}

var (
	keyValueRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_-]*)\s*:(?:\s+(.*)|\s*)$`)
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
)

// Document is a Slidev markdown document split into deck frontmatter and slides.
type Document struct {
	// Frontmatter holds the raw deck frontmatter lines without delimiters.
	Frontmatter []string
	Slides      []*Slide
}

// Slide is one slide block.
type Slide struct {
	// Frontmatter holds raw "key: value" lines without delimiters.
	Frontmatter []string
	Content     []string
	// OpenFence is the fence token left open when the input ended inside a code block.
	OpenFence string
}

// Get returns the value of the first frontmatter line with the given key.
func (s *Slide) Get(key string) (string, bool) {
	return lookupKey(s.Frontmatter, key)
}

// Layout returns the layout declared in the slide frontmatter.
func (s *Slide) Layout() Layout {
	v, ok := s.Get(KeyLayout)
	if !ok {
		return LayoutUnspecified
	}
	return Layout(v)
}

// Title returns the text of the first heading in the slide body.
func (s *Slide) Title() string {
	f := &Fence{}
	for _, line := range s.Content {
		if f.Feed(line) || f.Open() {
			continue
		}
		if _, text, ok := parseHeading(line); ok {
			return text
		}
	}
	return ""
}

// Body returns the slide content with a synthesized closing fence when the content ends inside a code block.
func (s *Slide) Body() []string {
	if s.OpenFence == "" {
		return s.Content
	}
	body := make([]string, 0, len(s.Content)+1)
	body = append(body, s.Content...)
	return append(body, s.OpenFence)
}

// String renders the slide as it appears in a canonical document.
func (s *Slide) String() string {
	var b strings.Builder
	if len(s.Frontmatter) > 0 {
		b.WriteString("---\n")
		b.WriteString(strings.Join(s.Frontmatter, "\n"))
		b.WriteString("\n---")
	}
	body := strings.Join(TrimBlankLines(s.Body()), "\n")
	if body != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(body)
	}
	return b.String()
}

// String renders the document in canonical form.
// A slide with frontmatter reuses the opening delimiter of its frontmatter as the slide separator.
// An empty headmatter is written when the first slide would otherwise be read back as deck frontmatter.
func (d *Document) String() string {
	var b strings.Builder
	switch {
	case len(d.Frontmatter) > 0:
		b.WriteString("---\n")
		b.WriteString(strings.Join(d.Frontmatter, "\n"))
		b.WriteString("\n---")
	case d.firstSlideLooksLikeHeadmatter():
		b.WriteString("---\n---")
	}
	first := true
	for _, s := range d.Slides {
		st := s.String()
		if st == "" {
			continue
		}
		switch {
		case b.Len() == 0:
		case len(s.Frontmatter) > 0 || first:
			b.WriteString("\n\n")
		default:
			b.WriteString("\n\n---\n\n")
		}
		b.WriteString(st)
		first = false
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteString("\n")
	return b.String()
}

func (d *Document) firstSlideLooksLikeHeadmatter() bool {
	for _, s := range d.Slides {
		if s.String() == "" {
			continue
		}
		if len(s.Frontmatter) > 0 {
			return false
		}
		return implicitHeadmatter(TrimBlankLines(s.Body())) != nil
	}
	return false
}

// splitKeyValue splits a "key: value" line keeping the value as written.
func splitKeyValue(line string) (key, raw string, ok bool) {
	m := keyValueRe.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// parseKeyValue splits a "key: value" line. The value is unquoted.
func parseKeyValue(line string) (key, value string, ok bool) {
	key, raw, ok := splitKeyValue(line)
	if !ok {
		return "", "", false
	}
	return key, Unquote(raw), true
}

// Unquote strips one pair of matching single or double quotes around v.
func Unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

func lookupKey(lines []string, key string) (string, bool) {
	for _, line := range lines {
		k, v, ok := parseKeyValue(line)
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

// IsSlideKey reports whether key is a recognized slide scoped key.
func IsSlideKey(key string) bool {
	for _, k := range SlideKeys {
		if k == key {
			return true
		}
	}
	return false
}

// IsDeckKey reports whether key is a recognized deck scoped key.
func IsDeckKey(key string) bool {
	for _, k := range DeckKeys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// IsSlideOnlyKey reports whether key is only meaningful on a slide.
// layout and background are slide-only; class and transition are legal at both scopes.
func IsSlideOnlyKey(key string) bool {
	return IsSlideKey(key) && !IsDeckKey(key)
}

func isDeckOnlyKey(key string) bool {
	return IsDeckKey(key) && !IsSlideKey(key)
}

// slideKeyLine reports whether line is a "key: value" directive for a recognized slide key.
// The value is returned as written.
func slideKeyLine(line string) (key, raw string, ok bool) {
	k, raw, ok := splitKeyValue(strings.TrimSpace(line))
	if !ok || !IsSlideKey(k) || raw == "" {
		return "", "", false
	}
	return k, raw, true
}

func parseHeading(line string) (level int, text string, ok bool) {
	m := headingRe.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), strings.TrimSpace(m[2]), true
}

// layoutHeading reports whether line is a level 1-3 heading whose text is a layout name.
func layoutHeading(line string) (Layout, bool) {
	level, text, ok := parseHeading(strings.TrimSpace(line))
	if !ok || level > 3 {
		return LayoutUnspecified, false
	}
	return LookupLayout(text)
}

func columnMarker(line string) (string, bool) {
	t := strings.TrimSpace(line)
	for _, m := range ColumnMarkers {
		if strings.EqualFold(t, m) {
			return m, true
		}
	}
	return "", false
}

func isSeparator(line string) bool {
	return strings.TrimSpace(line) == "---"
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// TrimBlankLines returns lines without leading and trailing blank lines.
func TrimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}
