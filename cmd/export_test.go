package cmd

import "testing"

func TestExportFormatOf(t *testing.T) {
	tests := []struct {
		out     string
		format  string
		want    string
		wantErr bool
	}{
		{"slides.pdf", "", "pdf", false},
		{"deck.PPTX", "", "pptx", false},
		{"slides.pdf", "png", "png", false},
		{"slides", "", "", true},
		{"slides.pdf", "gif", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.out+"/"+tt.format, func(t *testing.T) {
			got, err := exportFormatOf(tt.out, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("exportFormatOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
