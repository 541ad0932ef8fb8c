package slidefmt

import (
	"fmt"
	"strings"
)

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

// Validate checks the structural invariants of Slidev markdown.
// All checks run and every violation is reported; slide numbers are 1-based.
func Validate(markdown string) *ValidationResult {
	if strings.TrimSpace(markdown) == "" {
		return &ValidationResult{OK: false, Errors: []string{"document is empty"}}
	}
	doc := Parse(markdown)
	var errs []string
	for _, line := range doc.Frontmatter {
		if isIndented(line) {
			continue
		}
		if k, _, ok := parseKeyValue(line); ok && IsSlideOnlyKey(k) {
			errs = append(errs, fmt.Sprintf("deck frontmatter contains slide key %q", k))
		}
	}
	if len(doc.Slides) == 0 {
		errs = append(errs, "no slide content detected")
	}
	for i, s := range doc.Slides {
		errs = append(errs, validateSlide(i+1, s)...)
	}
	return &ValidationResult{
		OK:     len(errs) == 0,
		Errors: errs,
	}
}

func validateSlide(n int, s *Slide) []string {
	var errs []string
	_, hasLayout := s.Get(KeyLayout)
	layout := s.Layout()

	started := false
	f := &Fence{}
	for _, line := range s.Content {
		inFence := f.Open()
		if f.Feed(line) || inFence {
			started = true
			continue
		}
		if !started && !isBlank(line) {
			started = true
			if l, ok := layoutHeading(line); ok && !hasLayout {
				errs = append(errs, fmt.Sprintf("slide %d: heading %q looks like a layout declaration but the slide has no layout key", n, string(l)))
			}
		}
		if k, _, ok := slideKeyLine(line); ok {
			errs = append(errs, fmt.Sprintf("slide %d: slide key %q found in body: %s", n, k, strings.TrimSpace(line)))
		}
		if m, ok := columnMarker(line); ok && layout != LayoutTwoCols {
			errs = append(errs, fmt.Sprintf("slide %d: column marker %s requires layout: %s", n, m, LayoutTwoCols))
		}
	}
	if s.OpenFence != "" || f.Open() {
		token := s.OpenFence
		if token == "" {
			token = f.token
		}
		errs = append(errs, fmt.Sprintf("slide %d: unterminated code fence %s", n, token))
	}
	return errs
}
