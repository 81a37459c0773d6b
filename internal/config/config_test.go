package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PDFVIEWER_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Engine.Name != "fitz" {
		t.Fatalf("expected default engine fitz, got %s", cfg.Engine.Name)
	}
	if cfg.Viewer.SinglePage {
		t.Fatal("expected continuous scroll by default")
	}
	if cfg.Actions.PrintSpooler != "lp" {
		t.Fatalf("expected default spooler lp, got %s", cfg.Actions.PrintSpooler)
	}
	if cfg.History.Limit != 20 {
		t.Fatalf("expected default history limit 20, got %d", cfg.History.Limit)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.UI.Theme != "mocha" {
		t.Fatalf("expected default theme mocha, got %s", cfg.UI.Theme)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `[viewer]
single_page = true
text_width = 100

[actions]
printer = "office"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PDFVIEWER_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Viewer.SinglePage {
		t.Fatal("single_page from file not applied")
	}
	if cfg.Viewer.TextWidth != 100 {
		t.Fatalf("text_width = %d, want 100", cfg.Viewer.TextWidth)
	}
	if cfg.Actions.Printer != "office" {
		t.Fatalf("printer = %s, want office", cfg.Actions.Printer)
	}
	// untouched keys keep their defaults
	if cfg.Actions.PrintSpooler != "lp" {
		t.Fatalf("spooler default lost, got %s", cfg.Actions.PrintSpooler)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PDFVIEWER_CONFIG", "")
	t.Setenv("PDFVIEWER_ENGINE_NAME", "mupdf")
	t.Setenv("PDFVIEWER_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Name != "mupdf" {
		t.Fatalf("expected env engine mupdf, got %s", cfg.Engine.Name)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected env log level debug, got %s", cfg.Log.Level)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("PDFVIEWER_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Viewer.SinglePage = true
	cfg.Actions.ExportDir = "/tmp/exports"
	cfg.UI.Theme = "latte"

	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.Viewer.SinglePage {
		t.Fatal("saved single_page not round-tripped")
	}
	if got.Actions.ExportDir != "/tmp/exports" {
		t.Fatalf("export_dir = %s, want /tmp/exports", got.Actions.ExportDir)
	}
	if got.UI.Theme != "latte" {
		t.Fatalf("theme = %s, want latte", got.UI.Theme)
	}
}
