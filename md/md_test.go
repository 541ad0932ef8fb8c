package md

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/slidefmt"
	"github.com/tenntenn/golden"
)

func TestConvertGolden(t *testing.T) {
	tests := []struct {
		in    string
		opts  Options
		stats Stats
	}{
		{
			in:    "basic.md",
			stats: Stats{TotalSlides: 2, HasImages: true},
		},
		{
			in:    "frontmatter.md",
			opts:  Options{Author: "Ada"},
			stats: Stats{TotalSlides: 1, HasCode: true, HasDiagrams: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, err := os.ReadFile(filepath.Join("testdata", tt.in))
			if err != nil {
				t.Fatal(err)
			}
			got := Convert(string(b), tt.opts)
			if diff := cmp.Diff(got.Stats, tt.stats); diff != "" {
				t.Error(diff)
			}
			if os.Getenv("UPDATE_GOLDEN") != "" {
				golden.Update(t, "testdata", tt.in, []byte(got.Slides))
				return
			}
			if diff := golden.Diff(t, "testdata", tt.in, []byte(got.Slides)); diff != "" {
				t.Error(diff)
			}
			if r := slidefmt.Validate(got.Slides); !r.OK {
				t.Errorf("converted document does not validate: %v", r.Errors)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("Lots of text. ", 25))
	in := "# Title\n\nShort intro.\n\n## Section\n\n" + long + "\n\n```go\nfmt.Println(\"hi\")\n```\n"
	got := Convert(in, Options{Theme: "seriph", Title: "Demo", Transition: "fade"})

	want := "---\ntheme: seriph\ntitle: \"Demo\"\ntransition: fade\nclass: text-center\n---\n\n" +
		"---\nlayout: center\ntransition: slide-left\n---\n\n## Title\n\nShort intro.\n\n" +
		"---\nlayout: two-cols\n---\n\n### Section\n\n" + long + "\n\n```go\nfmt.Println(\"hi\")\n```\n"
	if diff := cmp.Diff(got.Slides, want); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(got.Stats, Stats{TotalSlides: 2, HasCode: true}); diff != "" {
		t.Error(diff)
	}

	doc := slidefmt.Parse(got.Slides)
	if len(doc.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(doc.Slides))
	}
	if l := doc.Slides[1].Layout(); l != slidefmt.LayoutTwoCols {
		t.Errorf("got layout %q, want %q", l, slidefmt.LayoutTwoCols)
	}
	if r := slidefmt.Validate(got.Slides); !r.OK {
		t.Errorf("converted document does not validate: %v", r.Errors)
	}
	if n := slidefmt.Normalize(got.Slides); n != got.Slides {
		t.Error(cmp.Diff(n, got.Slides))
	}
}

func TestConvertLayout(t *testing.T) {
	long := strings.Repeat("a", 250)
	tests := []struct {
		name string
		in   string
		want slidefmt.Layout
	}{
		{"short text", "## A\n\nshort", slidefmt.LayoutCenter},
		{"long text", "## A\n\n" + long, slidefmt.LayoutUnspecified},
		{"image with long text", "## A\n\n![x](x.png)\n\n" + long, slidefmt.LayoutImageRight},
		{"short code", "## A\n\n```\nx\n```", slidefmt.LayoutUnspecified},
		{"long code", "## A\n\n```\n" + long + long + "\n```", slidefmt.LayoutTwoCols},
		{"heading inside a fence is content", "## A\n\n```\n# not a heading\n```", slidefmt.LayoutUnspecified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.in, Options{})
			doc := slidefmt.Parse(got.Slides)
			if len(doc.Slides) != 1 {
				t.Fatalf("got %d slides, want 1", len(doc.Slides))
			}
			if l := doc.Slides[0].Layout(); l != tt.want {
				t.Errorf("got layout %q, want %q", l, tt.want)
			}
		})
	}
}

func TestConvertContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "thematic break does not split the slide",
			in:   "## A\n\nabove\n\n---\n\nbelow",
			want: "---\ntheme: seriph\ntitle: \"Presentation\"\ntransition: slide-left\nclass: text-center\n---\n\n---\nlayout: center\n---\n\n### A\n\nabove\n\n----\n\nbelow\n",
		},
		{
			name: "unterminated fence is closed",
			in:   "#### Deep\n\n```sh\necho hi",
			want: "---\ntheme: seriph\ntitle: \"Presentation\"\ntransition: slide-left\nclass: text-center\n---\n\n##### Deep\n\n```sh\necho hi\n```\n",
		},
		{
			name: "empty input",
			in:   "",
			want: "---\ntheme: seriph\ntitle: \"Presentation\"\ntransition: slide-left\nclass: text-center\n---\n\n---\nlayout: center\ntransition: slide-left\n---\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.in, Options{})
			if diff := cmp.Diff(got.Slides, tt.want); diff != "" {
				t.Error(diff)
			}
			if got.Stats.TotalSlides < 1 {
				t.Errorf("got %d slides", got.Stats.TotalSlides)
			}
		})
	}
}

func TestNewWithRules(t *testing.T) {
	c, err := New(WithRules(
		Rule{If: "index == 0", Layout: "cover"},
		Rule{If: "hasCode", Layout: "two-cols"},
		Rule{If: "title.startsWith('Q')", Layout: "quote"},
	))
	if err != nil {
		t.Fatal(err)
	}
	got := c.Convert("# Intro\n\n## Code\n\n```\nx\n```\n\n## Quote of the day\n\ntext\n\n## Plain\n\ntext", Options{})
	doc := slidefmt.Parse(got.Slides)
	var layouts []slidefmt.Layout
	for _, s := range doc.Slides {
		layouts = append(layouts, s.Layout())
	}
	want := []slidefmt.Layout{slidefmt.LayoutCover, slidefmt.LayoutTwoCols, slidefmt.LayoutQuote, slidefmt.LayoutCenter}
	if diff := cmp.Diff(layouts, want); diff != "" {
		t.Error(diff)
	}
}

func TestNewInvalidRule(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"unknown layout", Rule{If: "true", Layout: "sidebar"}},
		{"syntax error", Rule{If: "index ==", Layout: "cover"}},
		{"unknown variable", Rule{If: "pages > 1", Layout: "cover"}},
		{"not a bool", Rule{If: "index + 1", Layout: "cover"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithRules(tt.rule))
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("got %v, want ErrInvalidRule", err)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	if _, ok := LookupTheme(DefaultTheme); !ok {
		t.Errorf("default theme %q is not in the catalog", DefaultTheme)
	}
	if _, ok := LookupTransition(DefaultTransition); !ok {
		t.Errorf("default transition %q is not in the catalog", DefaultTransition)
	}
}

func FuzzConvert(f *testing.F) {
	seeds := []string{
		"",
		"# Title\n\nShort intro.",
		"---\ntheme: default\n---\n\n# A\n\n```\n---\n```",
		"no headings at all",
		"```\nunterminated",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, in string) {
		got := Convert(in, Options{})
		if got.Stats.TotalSlides < 1 {
			t.Errorf("got %d slides", got.Stats.TotalSlides)
		}
	})
}
