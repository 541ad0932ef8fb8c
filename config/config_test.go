package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/k1LoW/slidefmt/extract"
	"github.com/k1LoW/slidefmt/md"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		profile string
		want    *Config
		wantErr bool
	}{
		{
			name: "no config file",
			want: &Config{},
		},
		{
			name: "config.yml",
			files: map[string]string{
				"config.yml": `
theme: unicorn
title: Weekly
transition: fade
rules:
  - if: hasCode && length > 500
    layout: two-cols
sentinel:
  start: BEGIN
  end: END
`,
			},
			want: &Config{
				Theme:      "unicorn",
				Title:      "Weekly",
				Transition: "fade",
				Rules:      []md.Rule{{If: "hasCode && length > 500", Layout: "two-cols"}},
				Sentinel:   extract.Options{Start: "BEGIN", End: "END"},
			},
		},
		{
			name: "profile takes precedence",
			files: map[string]string{
				"config.yml":      "theme: seriph\n",
				"config-work.yaml": "theme: apple-basic\n",
			},
			profile: "work",
			want:    &Config{Theme: "apple-basic"},
		},
		{
			name: "missing profile falls back to config.yml",
			files: map[string]string{
				"config.yaml": "theme: seriph\n",
			},
			profile: "work",
			want:    &Config{Theme: "seriph"},
		},
		{
			name: "environment variables are expanded",
			files: map[string]string{
				"config.yml": "author: ${SLIDEFMT_TEST_AUTHOR}\n",
			},
			want: &Config{Author: "Ada"},
		},
		{
			name: "broken yaml",
			files: map[string]string{
				"config.yml": "rules: [\n",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", tmpDir)
			t.Setenv("SLIDEFMT_TEST_AUTHOR", "Ada")
			configHomePath = ""

			dir := filepath.Join(tmpDir, "slidefmt")
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("Failed to create config directory: %v", err)
			}
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
					t.Fatalf("Failed to write config file: %v", err)
				}
			}

			got, err := Load(tt.profile)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(got, tt.want, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestConvertOptions(t *testing.T) {
	cfg := &Config{Theme: "unicorn", Title: "Weekly", Author: "Ada", Transition: "fade"}
	got := cfg.ConvertOptions(md.Options{Title: "Override"})
	want := md.Options{Theme: "unicorn", Title: "Override", Author: "Ada", Transition: "fade"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error(diff)
	}
}

func TestStateHomePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	stateHomePath = ""
	if got, want := StateHomePath(), filepath.Join("/tmp/state", "slidefmt"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
