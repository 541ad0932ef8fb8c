// Package extract pulls candidate Slidev markdown out of a free-form assistant reply.
package extract

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/slidefmt"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	DefaultStart = "<!-- slidev:start -->"
	DefaultEnd   = "<!-- slidev:end -->"

	maxSeparatorScore = 10
)

var ErrNotFound = errors.New("no slidev markdown found")

var (
	keyLineRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_-]*)\s*:\s*\S`)
	headingRe = regexp.MustCompile(`^#{1,6}\s+\S`)
)

// Options are the sentinels delimiting an explicit block. Empty values use the defaults.
type Options struct {
	Start string `json:"start,omitempty" yaml:"start,omitempty"`
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
}

// Block is a fenced code block found in a reply.
type Block struct {
	Language string
	Content  string
	Score    int
}

// Slidev returns the markdown between the sentinels when the reply has them.
// Otherwise it returns the content of the best scoring fenced code block.
// It returns ErrNotFound when no block looks like slides.
func Slidev(reply string, opts Options) (string, error) {
	start, end := opts.Start, opts.End
	if start == "" {
		start = DefaultStart
	}
	if end == "" {
		end = DefaultEnd
	}
	if s, ok := betweenSentinels(reply, start, end); ok {
		return s, nil
	}

	var best *Block
	for _, b := range Blocks(reply) {
		if b.Score == 0 {
			continue
		}
		// ties go to the earlier block
		if best == nil || b.Score > best.Score {
			best = b
		}
	}
	if best == nil {
		return "", ErrNotFound
	}
	return best.Content, nil
}

func betweenSentinels(reply, start, end string) (string, bool) {
	i := strings.Index(reply, start)
	if i < 0 {
		return "", false
	}
	rest := reply[i+len(start):]
	if j := strings.Index(rest, end); j >= 0 {
		rest = rest[:j]
	}
	rest = strings.Trim(rest, "\r\n")
	if strings.TrimSpace(rest) == "" {
		return "", false
	}
	return rest + "\n", true
}

// Blocks returns the fenced code blocks of reply in document order with their scores.
func Blocks(reply string) []*Block {
	src := []byte(reply)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	var blocks []*Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		b := &Block{
			Language: string(fcb.Language(src)),
			Content:  buf.String(),
		}
		b.Score = score(b)
		blocks = append(blocks, b)
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func score(b *Block) int {
	s := 0
	switch strings.ToLower(b.Language) {
	case "markdown", "md", "slidev":
		s += 3
	}
	separators := 0
	for _, line := range slidefmt.SplitLines(b.Content) {
		t := strings.TrimSpace(line)
		switch {
		case t == "---":
			separators += 2
		case headingRe.MatchString(t):
			s++
		default:
			if m := keyLineRe.FindStringSubmatch(t); m != nil && (slidefmt.IsSlideKey(m[1]) || slidefmt.IsDeckKey(m[1])) {
				s += 2
			}
		}
	}
	return s + min(separators, maxSeparatorScore)
}
