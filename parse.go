package slidefmt

import (
	"slices"
	"strings"
)

var lineEndingRep = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines normalizes line endings and splits s into lines.
func SplitLines(s string) []string {
	return strings.Split(lineEndingRep.Replace(s), "\n")
}

type segment struct {
	lines []string
	// separated is true when the segment is terminated by a bare --- line.
	separated bool
}

// Parse splits markdown into deck frontmatter and slides.
// Bare --- lines inside fenced code blocks are never treated as delimiters.
func Parse(markdown string) *Document {
	lines := SplitLines(markdown)
	doc := &Document{}

	var (
		firstFM    []string
		hasFirstFM bool
	)
	i := 0
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	switch {
	case i < len(lines) && isSeparator(lines[i]):
		end := closingDelimiter(lines, i+1)
		if end < 0 || !isFrontmatterBlock(lines[i+1:end], true) {
			// not a frontmatter block, the --- is an ordinary separator
			break
		}
		block := lines[i+1 : end]
		if isFirstSlideFrontmatter(block) {
			firstFM, hasFirstFM = block, true
		} else {
			doc.Frontmatter = block
		}
		i = end + 1
	case i < len(lines):
		if run := implicitHeadmatter(lines[i:]); run != nil {
			doc.Frontmatter = run
			i += len(run)
		}
	}

	segs, openFence := splitSegments(lines[i:])
	add := func(fm, content []string, explicit bool, last bool) {
		s := newSlide(fm, content, explicit)
		if last {
			s.OpenFence = openFence
		}
		if !explicit && len(s.Frontmatter) == 0 && len(s.Content) == 0 && s.OpenFence == "" {
			return
		}
		doc.Slides = append(doc.Slides, s)
	}

	idx := 0
	if hasFirstFM {
		add(firstFM, segs[0].lines, true, len(segs) == 1)
		idx = 1
	}
	for idx < len(segs) {
		seg := segs[idx]
		if idx > 0 && seg.separated && idx+1 < len(segs) {
			if fm := TrimBlankLines(seg.lines); isFrontmatterBlock(fm, false) {
				add(fm, segs[idx+1].lines, true, idx+1 == len(segs)-1)
				idx += 2
				continue
			}
		}
		add(nil, seg.lines, false, idx == len(segs)-1)
		idx++
	}
	return doc
}

// splitSegments splits lines on unfenced bare --- lines.
// It returns the fence token left open at the end of input, if any.
func splitSegments(lines []string) ([]segment, string) {
	var (
		segs []segment
		cur  []string
	)
	f := &Fence{}
	for _, line := range lines {
		if f.Open() {
			f.Feed(line)
			cur = append(cur, line)
			continue
		}
		if f.Feed(line) {
			cur = append(cur, line)
			continue
		}
		if isSeparator(line) {
			segs = append(segs, segment{lines: cur, separated: true})
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	segs = append(segs, segment{lines: cur})
	return segs, f.token
}

func newSlide(fm, content []string, explicit bool) *Slide {
	content = TrimBlankLines(content)
	if !explicit {
		n := 0
		for n < len(content) {
			if _, _, ok := slideKeyLine(content[n]); !ok {
				break
			}
			n++
		}
		fm = content[:n]
		content = TrimBlankLines(content[n:])
	}
	s := &Slide{}
	if len(fm) > 0 {
		s.Frontmatter = append([]string{}, fm...)
	}
	if len(content) > 0 {
		s.Content = append([]string{}, content...)
	}
	return s
}

// closingDelimiter returns the index of the first bare --- line at or after from, or -1.
func closingDelimiter(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if isSeparator(lines[i]) {
			return i
		}
	}
	return -1
}

// isFrontmatterBlock reports whether the lines between two delimiters are a YAML mapping.
// Blank headmatter is accepted. Slide frontmatter between separators may not hold blank lines.
func isFrontmatterBlock(lines []string, headmatter bool) bool {
	if len(TrimBlankLines(lines)) == 0 {
		return headmatter
	}
	if !headmatter && slices.ContainsFunc(lines, isBlank) {
		return false
	}
	_, ok := DecodeFrontmatter(lines)
	return ok
}

// isFirstSlideFrontmatter reports whether a leading block belongs to the first slide.
// It does when it declares a slide-only key and no deck-only key.
func isFirstSlideFrontmatter(block []string) bool {
	return containsKey(block, IsSlideOnlyKey) && !containsKey(block, isDeckOnlyKey)
}

// implicitHeadmatter returns the leading "key: value" run of lines when it is
// undelimited deck frontmatter, or nil.
func implicitHeadmatter(lines []string) []string {
	run := leadingKeyValueRun(lines)
	if !containsKey(run, IsDeckKey) || isFirstSlideFrontmatter(run) {
		return nil
	}
	return run
}

// leadingKeyValueRun returns the leading run of non-blank "key: value" lines
// together with their indented continuation lines.
func leadingKeyValueRun(lines []string) []string {
	n := 0
	for n < len(lines) {
		line := lines[n]
		if isBlank(line) {
			break
		}
		if !isKeyValue(line) && (n == 0 || !isIndented(line)) {
			break
		}
		n++
	}
	return lines[:n]
}

func containsKey(lines []string, match func(string) bool) bool {
	for _, line := range lines {
		if k, _, ok := parseKeyValue(line); ok && match(k) {
			return true
		}
	}
	return false
}

func isKeyValue(line string) bool {
	_, _, ok := parseKeyValue(line)
	return ok
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
