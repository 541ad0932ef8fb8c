package slidefmt

import (
	"fmt"
	"strings"
)

// Normalize rewrites Slidev-shaped markdown into canonical form.
//
// Slide-only keys found in the deck frontmatter are moved to the first slide,
// a leading heading naming a layout ("## cover") becomes a layout key,
// slide-key lines in a body are lifted into the slide frontmatter, and a slide
// using column markers without a layout gets layout: two-cols.
// Normalize never fabricates content and is idempotent.
func Normalize(markdown string) string {
	return normalizeDocument(Parse(markdown)).String()
}

func normalizeDocument(doc *Document) *Document {
	out := &Document{}
	var pending []string
	for i, line := range doc.Frontmatter {
		if k, _, ok := slideKeyLine(line); ok && IsSlideOnlyKey(k) && !isIndented(line) && !hasContinuation(doc.Frontmatter, i) {
			pending = append(pending, line)
			continue
		}
		out.Frontmatter = append(out.Frontmatter, line)
	}

	for i, s := range doc.Slides {
		var defaults []string
		if i == 0 {
			defaults = pending
		}
		ns := normalizeSlide(s, defaults)
		if strings.TrimSpace(ns.String()) == "" {
			continue
		}
		out.Slides = append(out.Slides, ns)
	}
	if len(doc.Slides) == 0 && len(pending) > 0 {
		out.Slides = append(out.Slides, normalizeSlide(&Slide{}, pending))
	}
	liftHeadmatter(out)
	return out
}

// liftHeadmatter moves the non slide keys of the first slide into the deck frontmatter
// when the deck has none and the first slide declares a deck-only key, so that the
// rendered headmatter reads back the same way.
func liftHeadmatter(doc *Document) {
	if len(doc.Frontmatter) > 0 || len(doc.Slides) == 0 {
		return
	}
	first := doc.Slides[0]
	if !containsKey(first.Frontmatter, isDeckOnlyKey) {
		return
	}
	var keep []string
	for _, line := range first.Frontmatter {
		if _, _, ok := slideKeyLine(line); ok && !isIndented(line) {
			keep = append(keep, line)
			continue
		}
		doc.Frontmatter = append(doc.Frontmatter, line)
	}
	first.Frontmatter = keep
}

func hasContinuation(lines []string, i int) bool {
	return i+1 < len(lines) && isIndented(lines[i+1]) && !isBlank(lines[i+1])
}

// slideKeys holds recognized slide keys with their values as written.
type slideKeys map[string]string

func (k slideKeys) has(key string) bool {
	_, ok := k[key]
	return ok
}

// setIfUnset records raw for key unless it is already set. First occurrence wins.
func (k slideKeys) setIfUnset(key, raw string) bool {
	if k.has(key) {
		return false
	}
	k[key] = raw
	return true
}

// lines renders the keys in canonical order.
func (k slideKeys) lines() []string {
	var lines []string
	for _, key := range SlideKeys {
		if v, ok := k[key]; ok {
			lines = append(lines, fmt.Sprintf("%s: %s", key, v))
		}
	}
	return lines
}

func normalizeSlide(s *Slide, defaults []string) *Slide {
	keys := slideKeys{}
	var others []string
	for i, line := range s.Frontmatter {
		if k, raw, ok := slideKeyLine(line); ok && !isIndented(line) && !hasContinuation(s.Frontmatter, i) {
			keys.setIfUnset(k, raw)
			continue
		}
		if !isBlank(line) {
			others = append(others, line)
		}
	}
	// explicit slide keys override the ones lifted from the deck
	for _, line := range defaults {
		if k, raw, ok := slideKeyLine(line); ok {
			keys.setIfUnset(k, raw)
		}
	}

	var (
		body    []string
		hasCols bool
		started bool
		squeeze bool
	)
	f := &Fence{}
	for _, line := range s.Body() {
		if squeeze {
			squeeze = false
			if isBlank(line) {
				continue
			}
		}
		inFence := f.Open()
		if f.Feed(line) || inFence {
			started = true
			body = append(body, line)
			continue
		}
		if !started && !isBlank(line) {
			started = true
			if l, ok := layoutHeading(line); ok && !keys.has(KeyLayout) {
				keys.setIfUnset(KeyLayout, string(l))
				continue
			}
		}
		if k, raw, ok := slideKeyLine(line); ok && keys.setIfUnset(k, raw) {
			// drop the blank line left behind by the lifted line
			squeeze = len(body) > 0 && isBlank(body[len(body)-1])
			continue
		}
		if _, ok := columnMarker(line); ok {
			hasCols = true
		}
		body = append(body, line)
	}
	if hasCols {
		keys.setIfUnset(KeyLayout, string(LayoutTwoCols))
	}

	ns := &Slide{}
	if fm := append(others, keys.lines()...); len(fm) > 0 {
		ns.Frontmatter = fm
	}
	if content := TrimBlankLines(body); len(content) > 0 {
		ns.Content = content
	}
	return ns
}
