package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hy4ri/timeline-tui/internal/timeline"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Granularity() != timeline.Day {
		t.Errorf("expected day granularity, got %s", cfg.Granularity())
	}
	if !cfg.Timeline.AllowExtend || cfg.Timeline.PixelsPerCell != 10 {
		t.Errorf("unexpected defaults: %+v", cfg.Timeline)
	}
}

func TestLoad_TemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(Template), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Path != "~/timeline.yaml" {
		t.Errorf("unexpected sources: %+v", cfg.Sources)
	}
	if cfg.ICSHorizonDays != 365 {
		t.Errorf("expected horizon 365, got %d", cfg.ICSHorizonDays)
	}
}

func TestLoad_NormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
timeline:
  granularity: fortnight
  padding_before: -3
  pixels_per_cell: 0
sources:
  - path: a.ICS
    kind: " ICS "
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeline.Granularity != "day" {
		t.Errorf("expected granularity to fall back to day, got %q", cfg.Timeline.Granularity)
	}
	if cfg.Timeline.PaddingBefore != 0 {
		t.Errorf("expected padding 0, got %d", cfg.Timeline.PaddingBefore)
	}
	if cfg.Timeline.PixelsPerCell != 10 {
		t.Errorf("expected pixels per cell 10, got %v", cfg.Timeline.PixelsPerCell)
	}
	if cfg.Sources[0].Kind != "ics" {
		t.Errorf("expected kind ics, got %q", cfg.Sources[0].Kind)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeline: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Timeline.Granularity = "month"
	cfg.Reload = "*/5 * * * *"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Granularity() != timeline.Month || got.Reload != cfg.Reload {
		t.Errorf("round trip lost values: %+v", got)
	}
	opts := got.Options()
	if opts.Granularity != timeline.Month || opts.PaddingBefore != 7 {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/items.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "items.yaml") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got, _ := ExpandPath("/tmp/x"); got != "/tmp/x" {
		t.Errorf("absolute path changed: %q", got)
	}
}
