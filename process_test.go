package slidefmt

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProcess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Result
	}{
		{
			name: "empty input is returned unchanged",
			in:   "  \n",
			want: &Result{Text: "  \n", Errors: []string{"document is empty"}},
		},
		{
			name: "normalized text passes",
			in:   "## center\n\nHello",
			want: &Result{Text: "---\nlayout: center\n---\n\nHello\n"},
		},
		{
			name: "falls back to the sanitized text",
			in:   "---\ntheme: seriph\nlayout: cover\n---\n\n# Welcome\n\nSome text\nlayout: center\n",
			want: &Result{
				Text:   "---\ntheme: seriph\n---\n\n# Welcome\n\nSome text\n- layout: center\n",
				Fixed:  true,
				Errors: []string{`slide 1: slide key "layout" found in body: layout: center`},
			},
		},
		{
			name: "fallback turns a leading layout heading into a label",
			in:   "---\ntheme: seriph\nlayout: cover\n---\n\n# Intro\n\nSome text\nlayout: center\n",
			want: &Result{
				Text:   "---\ntheme: seriph\n---\n\n## INTRO SLIDE\n\nSome text\n- layout: center\n",
				Fixed:  true,
				Errors: []string{`slide 1: slide key "layout" found in body: layout: center`},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Process(tt.in)
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestProcessorLogsFallback(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p, err := NewProcessor(WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	got := p.Process("# A\n\n::right::\n\n---\nlayout: cover\n---\n\n# B\n\n```\nopen\n")
	if got.Fixed {
		t.Errorf("column markers and unterminated fences are repaired by normalization: %v", got.Errors)
	}
	got = p.Process("---\nlayout: cover\n---\n\n# A\n\nlayout: center\n")
	if !got.Fixed {
		t.Error("want fixed")
	}
	for _, msg := range []string{"normalized document", "validation failed", "sanitized document"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("log does not contain %q: %s", msg, buf.String())
		}
	}
}

func FuzzProcess(f *testing.F) {
	seeds := []string{
		"",
		"## center\n\nHello",
		"---\ntheme: seriph\nlayout: cover\n---\n\n# Hi\n",
		"# Compare\n\n::right::\n\nRight side\n",
		"# A\n\n```yaml\n---\nlayout: cover\n---\n```\n",
		"# Code\n\n```go\nfmt.Println()\n",
		"hello: world\n",
		"---\nlayout: cover\n---\n\n# A\n\nlayout: center\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, in string) {
		if r := Validate(Sanitize(Normalize(in))); !r.OK {
			t.Errorf("sanitized text does not validate: %v", r.Errors)
		}
		got := Process(in)
		if strings.TrimSpace(in) == "" {
			return
		}
		if r := Validate(got.Text); !r.OK {
			t.Errorf("processed text does not validate: %v", r.Errors)
		}
		if got.Fixed && len(got.Errors) == 0 {
			t.Error("fixed without errors")
		}
	})
}
