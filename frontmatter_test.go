package slidefmt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeFrontmatter(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   map[string]any
		wantOK bool
	}{
		{"blank", "\n  \n", map[string]any{}, true},
		{"mapping", "theme: seriph\ntitle: 'Demo'", map[string]any{"theme": "seriph", "title": "Demo"}, true},
		{"nested", "fonts:\n  sans: Inter", map[string]any{"fonts": map[string]any{"sans": "Inter"}}, true},
		{"comment only", "# A", nil, false},
		{"plain text", "Hello world", nil, false},
		{"list", "- a\n- b", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeFrontmatter(strings.Split(tt.in, "\n"))
			if ok != tt.wantOK {
				t.Fatalf("got ok %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestDecodeFrontmatterDuplicateKeys(t *testing.T) {
	if _, ok := DecodeFrontmatter([]string{"layout: cover", "layout: center"}); !ok {
		t.Error("duplicate keys should still be frontmatter")
	}
}
