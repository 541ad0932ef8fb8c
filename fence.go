package slidefmt

import (
	"regexp"
	"strings"
)

var fenceOpenRe = regexp.MustCompile("^(`{3,}|~{3,})")

// Fence tracks whether a line scan is inside a fenced code block.
// A block is closed only by a line that is exactly the opening token.
type Fence struct {
	token string
}

// Feed advances the state by one line and reports whether the line is a fence delimiter.
func (f *Fence) Feed(line string) bool {
	t := strings.TrimSpace(line)
	if f.token != "" {
		if t == f.token {
			f.token = ""
			return true
		}
		return false
	}
	m := fenceOpenRe.FindString(t)
	if m == "" {
		return false
	}
	f.token = m
	return true
}

func (f *Fence) Open() bool {
	return f.token != ""
}

// Token returns the opening token of the current block, or "" outside a block.
func (f *Fence) Token() string {
	return f.token
}
