package slidefmt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "# Slide\n",
		},
		{
			name: "directives become inert text",
			in:   "---\ntheme: seriph\nlayout: cover\nfoo: bar\n---\n\n## cover\n\n::left::\nA\n\n---\n\nB\n```js\nx\n",
			want: "---\ntheme: seriph\n---\n\n## COVER SLIDE\n\n**Left column**\nA\n\nB\n```js\nx\n```\n",
		},
		{
			name: "slide key lines become list items",
			in:   "# A\n\nText\n  class: big\n",
			want: "# A\n\nText\n- class: big\n",
		},
		{
			name: "empty deck block guards a leading key value line",
			in:   "hello: world\n",
			want: "---\n---\n\nhello: world\n",
		},
		{
			name: "deck continuations are kept with their key",
			in:   "---\ntitle: Demo\nfonts:\n  sans: Robot\nlayout:\n  name: cover\n---\n\n# A\n",
			want: "---\ntitle: Demo\nfonts:\n  sans: Robot\n---\n\n# A\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Error(diff)
			}
			if r := Validate(got); !r.OK {
				t.Errorf("sanitized text does not validate: %v", r.Errors)
			}
		})
	}
}
