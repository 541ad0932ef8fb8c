package slidefmt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "heading as layout",
			in:   "## center\n\nHello",
			want: "---\nlayout: center\n---\n\nHello\n",
		},
		{
			name: "heading naming a layout later in the slide is kept",
			in:   "Intro\n\n## cover\n",
			want: "Intro\n\n## cover\n",
		},
		{
			name: "slide-only keys move from the deck to the first slide",
			in:   "---\ntheme: seriph\nlayout: cover\n---\n\n# Hi\n",
			want: "---\ntheme: seriph\n---\n\n---\nlayout: cover\n---\n\n# Hi\n",
		},
		{
			name: "first slide starting with a deck key line keeps an empty headmatter",
			in:   "---\n\ntitle: Hello world\n\n# A\n\nBody\n",
			want: "---\n---\n\ntitle: Hello world\n\n# A\n\nBody\n",
		},
		{
			name: "first slide starting with an unknown key line needs no headmatter",
			in:   "foo: bar\n\n# A\n",
			want: "foo: bar\n\n# A\n",
		},
		{
			name: "column markers imply two-cols",
			in:   "# Compare\n\n::right::\n\nRight side\n",
			want: "---\nlayout: two-cols\n---\n\n# Compare\n\n::right::\n\nRight side\n",
		},
		{
			name: "slide key lines in the body are lifted",
			in:   "# A\n\nlayout: center\n\nText\n",
			want: "---\nlayout: center\n---\n\n# A\n\nText\n",
		},
		{
			name: "explicit frontmatter wins over body lines",
			in:   "---\nlayout: cover\n---\n\n# A\n\nlayout: center\n",
			want: "---\nlayout: cover\n---\n\n# A\n\nlayout: center\n",
		},
		{
			name: "keys are emitted in canonical order",
			in:   "# A\n\n---\ntransition: fade\nclass: text-white\nlayout: center\n---\n\n# B\n",
			want: "# A\n\n---\nlayout: center\nclass: text-white\ntransition: fade\n---\n\n# B\n",
		},
		{
			name: "quoted values are kept as written",
			in:   "# A\n\nbackground: \"#fff\"\n",
			want: "---\nbackground: \"#fff\"\n---\n\n# A\n",
		},
		{
			name: "fenced content is untouched",
			in:   "# Code\n\n```yaml\nlayout: cover\n---\n::right::\n```\n",
			want: "# Code\n\n```yaml\nlayout: cover\n---\n::right::\n```\n",
		},
		{
			name: "unterminated fence is closed",
			in:   "# Code\n\n```go\nfmt.Println()\n",
			want: "# Code\n\n```go\nfmt.Println()\n```\n",
		},
		{
			name: "slides without frontmatter are separated",
			in:   "# A\n---\n# B\n---\n---\n# C",
			want: "# A\n\n---\n\n# B\n\n---\n\n# C\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Error(diff)
			}
			again := Normalize(got)
			if diff := cmp.Diff(again, got); diff != "" {
				t.Errorf("not idempotent: %s", diff)
			}
		})
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	in := "---\ntheme: seriph\ntitle: \"Demo\"\n---\n\n---\nlayout: cover\n---\n\n# Demo\n\n---\nlayout: two-cols\n---\n\n# Compare\n\n::right::\n\nRight\n"
	doc := Parse(in)
	if got := len(doc.Slides); got != 2 {
		t.Fatalf("got %d slides, want 2", got)
	}
	if got := Normalize(in); got != in {
		t.Error(cmp.Diff(got, in))
	}
	if got := doc.String(); got != in {
		t.Error(cmp.Diff(got, in))
	}
}
