package md

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/slidefmt"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	DefaultTheme      = "seriph"
	DefaultTitle      = "Presentation"
	DefaultTransition = "slide-left"

	// deckClass is always emitted in the deck frontmatter.
	deckClass = "text-center"
	// sectionTransition is set on slides made from level 1 sections.
	sectionTransition = "slide-left"
)

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	imageRe    = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	listItemRe = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+(\S.*)$`)
)

// Options are the caller supplied deck values. Empty fields fall back to the input frontmatter, then to the defaults.
type Options struct {
	Theme      string `json:"theme,omitempty"`
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
	Transition string `json:"transition,omitempty"`
}

type Stats struct {
	TotalSlides int  `json:"totalSlides"`
	HasCode     bool `json:"hasCode"`
	HasImages   bool `json:"hasImages"`
	HasDiagrams bool `json:"hasDiagrams"`
}

type Result struct {
	Slides string `json:"slides"`
	Stats  Stats  `json:"stats"`
}

type Converter struct {
	rules    []Rule
	programs []*rule
	logger   *slog.Logger
}

type Option func(*Converter) error

// WithRules sets layout rules evaluated, in order, before the built-in layout heuristic.
func WithRules(rules ...Rule) Option {
	return func(c *Converter) error {
		c.rules = append(c.rules, rules...)
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// New returns a Converter. It fails with ErrInvalidRule when a rule does not compile.
func New(opts ...Option) (_ *Converter, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	c := &Converter{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if len(c.rules) > 0 {
		programs, err := compileRules(c.rules)
		if err != nil {
			return nil, err
		}
		c.programs = programs
	}
	return c, nil
}

var defaultConverter = &Converter{
	logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
}

// Convert converts raw markdown into a Slidev document with the default converter.
func Convert(markdown string, opts Options) *Result {
	return defaultConverter.Convert(markdown, opts)
}

type section struct {
	level    int
	title    string
	content  []string
	hasCode  bool
	hasImage bool
}

func (s *section) length() int {
	return utf8.RuneCountInString(strings.Join(s.content, "\n"))
}

// Convert splits markdown into slides at every heading, picks a layout per slide and
// merges the deck frontmatter. It never fails; the worst case is the whole input as one
// untitled slide.
func (c *Converter) Convert(markdown string, opts Options) *Result {
	lines := slidefmt.SplitLines(markdown)
	fm, body := extractFrontmatter(lines)

	stats := detectFeatures(strings.Join(body, "\n"))
	sections := splitSections(body)
	stats.TotalSlides = len(sections)

	doc := &slidefmt.Document{
		Frontmatter: deckFrontmatter(fm, opts),
	}
	for i, s := range sections {
		slide := &slidefmt.Slide{}
		layout := c.layout(i, s)
		if i == 0 && fm != nil {
			// layout and background of the input frontmatter belong to the first slide
			if v, ok := fm.values[slidefmt.KeyLayout]; ok {
				if l, ok := slidefmt.LookupLayout(v); ok {
					layout = l
				}
			}
		}
		if layout != slidefmt.LayoutUnspecified && layout != slidefmt.LayoutDefault {
			slide.Frontmatter = append(slide.Frontmatter, fmt.Sprintf("%s: %s", slidefmt.KeyLayout, layout))
		}
		if i == 0 && fm != nil {
			if e := fm.entry(slidefmt.KeyBackground); e != nil {
				slide.Frontmatter = append(slide.Frontmatter, e.lines...)
			}
		}
		if s.level == 1 {
			slide.Frontmatter = append(slide.Frontmatter, fmt.Sprintf("%s: %s", slidefmt.KeyTransition, sectionTransition))
		}
		if s.title != "" {
			slide.Content = append(slide.Content, fmt.Sprintf("%s %s", strings.Repeat("#", min(s.level+1, 6)), s.title))
		}
		if content := processContent(s.content); len(content) > 0 {
			if len(slide.Content) > 0 {
				slide.Content = append(slide.Content, "")
			}
			slide.Content = append(slide.Content, content...)
		}
		doc.Slides = append(doc.Slides, slide)
	}

	c.logger.Debug("converted document", slog.Int("slides", stats.TotalSlides))
	return &Result{
		Slides: doc.String(),
		Stats:  stats,
	}
}

// layout picks the layout of a section. Rules win over the built-in heuristic.
func (c *Converter) layout(index int, s *section) slidefmt.Layout {
	if l, ok := c.evalRules(index, s); ok {
		return l
	}
	n := s.length()
	switch {
	case s.hasImage && n > 200:
		return slidefmt.LayoutImageRight
	case s.hasCode && n > 300:
		return slidefmt.LayoutTwoCols
	case n < 100 && !s.hasCode:
		return slidefmt.LayoutCenter
	default:
		return slidefmt.LayoutUnspecified
	}
}

// detectFeatures reports which content features the markdown uses.
func detectFeatures(body string) Stats {
	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	stats := Stats{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.FencedCodeBlock:
			stats.HasCode = true
			if strings.EqualFold(string(v.Language(src)), "mermaid") {
				stats.HasDiagrams = true
			}
		case *ast.Image:
			stats.HasImages = true
		}
		return ast.WalkContinue, nil
	})
	return stats
}

// splitSections starts a new section at every heading outside fenced code.
func splitSections(lines []string) []*section {
	var sections []*section
	cur := &section{level: 1}
	flush := func() {
		cur.content = slidefmt.TrimBlankLines(cur.content)
		if cur.title != "" || len(cur.content) > 0 {
			sections = append(sections, cur)
		}
	}
	f := &slidefmt.Fence{}
	for _, line := range lines {
		inFence := f.Open()
		if f.Feed(line) || inFence {
			cur.hasCode = true
			cur.content = append(cur.content, line)
			continue
		}
		if m := headingRe.FindStringSubmatch(strings.TrimRight(line, " \t")); m != nil {
			flush()
			cur = &section{level: len(m[1]), title: strings.TrimSpace(m[2])}
			continue
		}
		if imageRe.MatchString(line) {
			cur.hasImage = true
		}
		cur.content = append(cur.content, line)
	}
	flush()
	if len(sections) == 0 {
		sections = append(sections, &section{level: 1})
	}
	return sections
}

// processContent normalizes list marker spacing and keeps bare --- lines from splitting the slide.
func processContent(lines []string) []string {
	out := make([]string, 0, len(lines))
	f := &slidefmt.Fence{}
	for _, line := range lines {
		inFence := f.Open()
		if f.Feed(line) || inFence {
			out = append(out, line)
			continue
		}
		if strings.TrimSpace(line) == "---" {
			out = append(out, "----")
			continue
		}
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			line = fmt.Sprintf("%s%s %s", m[1], m[2], m[3])
		}
		out = append(out, line)
	}
	if f.Open() {
		out = append(out, f.Token())
	}
	return out
}

// deckFrontmatter merges the deck frontmatter. Options win over the input frontmatter,
// which wins over the defaults.
func deckFrontmatter(fm *frontmatter, opts Options) []string {
	values := map[string]string{}
	if fm != nil {
		values = fm.values
	}
	theme := firstNonEmpty(opts.Theme, values["theme"], DefaultTheme)
	title := firstNonEmpty(opts.Title, values["title"], DefaultTitle)
	author := firstNonEmpty(opts.Author, values["author"])
	transition := firstNonEmpty(opts.Transition, values["transition"], DefaultTransition)

	lines := []string{
		"theme: " + theme,
		"title: " + strconv.Quote(title),
	}
	if author != "" {
		lines = append(lines, "author: "+strconv.Quote(author))
	}
	lines = append(lines,
		"transition: "+transition,
		"class: "+deckClass,
	)
	if fm == nil {
		return lines
	}
	for _, e := range fm.entries {
		switch e.key {
		case "theme", "title", "author", "transition", "class", slidefmt.KeyLayout, slidefmt.KeyBackground:
			continue
		}
		lines = append(lines, e.lines...)
	}
	return lines
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
