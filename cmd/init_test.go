package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xll-gen/bundlefile/internal/config"
	"github.com/xll-gen/bundlefile/internal/ui"
)

// TestRunInit verifies that init writes a loadable configuration whose
// suggested package follows go.mod.
func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module github.com/acme/web-assets/v2\n\ngo 1.22\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	p := &ui.Printer{Out: &out, Err: &out}
	if err := runInit(p, dir); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	path := filepath.Join(dir, config.DefaultPath)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "web_assets") {
		t.Errorf("scaffold does not mention the suggested package:\n%s", data)
	}

	cfg, err := config.Load(path, false)
	if err != nil {
		t.Fatalf("scaffold does not load: %v", err)
	}
	if cfg.Gen.ChunkSize != 1024 || !*cfg.Gen.Atomic || cfg.Gen.Header {
		t.Errorf("Gen = %+v", cfg.Gen)
	}

	if err := runInit(p, dir); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second runInit error = %v, want already exists", err)
	}
}

func TestRunInit_NoGoMod(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	if err := runInit(&ui.Printer{Out: &out, Err: &out}, dir); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}
	if !strings.Contains(out.String(), "main") {
		t.Errorf("output %q does not report package main", out.String())
	}
}

func TestPackageNameFromModule(t *testing.T) {
	tests := []struct {
		modPath string
		want    string
	}{
		{"example.com/assets", "assets"},
		{"github.com/acme/web-assets/v2", "web_assets"},
		{"github.com/acme/Static.Files", "static_files"},
		{"9lives", "p9lives"},
		{"example.com/---", "main"},
		{"gopkg.in/yaml.v3", "yaml_v3"},
	}

	for _, tt := range tests {
		t.Run(tt.modPath, func(t *testing.T) {
			if got := packageNameFromModule(tt.modPath); got != tt.want {
				t.Errorf("packageNameFromModule(%q) = %q, want %q", tt.modPath, got, tt.want)
			}
		})
	}
}
