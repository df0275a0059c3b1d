package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectProjectName(t *testing.T) {
	tests := []struct {
		name     string
		manifest map[string]string
		want     string // empty = directory base name
	}{
		{"bare directory", nil, ""},
		{"go module", map[string]string{"go.mod": "module github.com/acme/debugee\n\ngo 1.22\n"}, "debugee"},
		{"major version suffix dropped", map[string]string{"go.mod": "module github.com/acme/tracer/v3\n"}, "tracer"},
		{"quoted single-element module", map[string]string{"go.mod": "module \"scratch\"\n"}, "scratch"},
		{"go.mod without module line", map[string]string{
			"go.mod":       "go 1.22\n",
			"package.json": `{"name": "web-ui"}`,
		}, "web-ui"},
		{"go.mod beats package.json", map[string]string{
			"go.mod":       "module example.com/server\n",
			"package.json": `{"name": "frontend"}`,
		}, "server"},
		{"package.json beats pyproject", map[string]string{
			"package.json":   `{"name": "frontend"}`,
			"pyproject.toml": "[project]\nname = \"tools\"\n",
		}, "frontend"},
		{"broken package.json skipped", map[string]string{
			"package.json":   `{name:`,
			"pyproject.toml": "[project]\nname = \"tools\"\n",
		}, "tools"},
		{"broken pyproject", map[string]string{"pyproject.toml": "[[[ nope"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for file, content := range tt.manifest {
				writeFile(t, filepath.Join(dir, file), content)
			}
			want := tt.want
			if want == "" {
				want = filepath.Base(dir)
			}
			if got := DetectProjectName(dir); got != want {
				t.Errorf("DetectProjectName() = %q, want %q", got, want)
			}
		})
	}
}

func TestLoad_ProjectName(t *testing.T) {
	t.Run("detected from the configured root", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), "[project]\nroot = \"svc\"\n")
		if err := os.Mkdir(filepath.Join(dir, "svc"), 0755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(dir, "svc", "go.mod"), "module github.com/acme/payments\n")

		cfg, err := Load(filepath.Join(dir, FileName))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Project.Name != "payments" {
			t.Errorf("Project.Name = %q, want payments", cfg.Project.Name)
		}
	})

	t.Run("configured name wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), "[project]\nname = \"pinned\"\n")
		writeFile(t, filepath.Join(dir, "go.mod"), "module github.com/acme/ignored\n")

		cfg, err := Load(filepath.Join(dir, FileName))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Project.Name != "pinned" {
			t.Errorf("Project.Name = %q, want pinned", cfg.Project.Name)
		}
	})
}
