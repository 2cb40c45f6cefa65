package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/winshift/internal/geom"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if !cfg.RespectStruts {
		t.Fatalf("struts should be respected by default")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != DefaultLogLevel || len(res.Files) != 0 {
		t.Fatalf("expected defaults, got %+v", res)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != DefaultLogLevel {
		t.Fatalf("expected log_level %q, got %q", DefaultLogLevel, res.Config.LogLevel)
	}
	if src := res.SourceOf("log_level"); src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}
}

func TestLoadFromPath_AllKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		`display: ":1"`,
		"log_level: debug",
		"log_file: /tmp/winshift.log",
		"respect_struts: false",
		"notify_on_error: true",
		"xauthority: /run/user/1000/xauth",
		"palette_backend: rofi",
		"palette_fuzzy_matching: true",
		"placements:",
		"  main:",
		"    x: 0",
		"    y: 0",
		"    width: 0.7",
		"    height: 1",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" || cfg.LogLevel != "debug" || cfg.LogFile != "/tmp/winshift.log" {
		t.Fatalf("unexpected scalars: %+v", cfg)
	}
	if cfg.RespectStruts || !cfg.NotifyOnError || !cfg.PaletteFuzzyMatching {
		t.Fatalf("unexpected booleans: %+v", cfg)
	}
	if cfg.XAuthority != "/run/user/1000/xauth" || cfg.PaletteBackend != "rofi" {
		t.Fatalf("unexpected session/palette keys: %+v", cfg)
	}
	if got := cfg.CustomPlacements()["main"]; got != geom.Percent(0, 0, 0.7, 1) {
		t.Fatalf("placement main = %v", got)
	}
	if src := res.SourceOf("placements.main.width"); src.Kind != SourceFile || src.Line != 13 {
		t.Fatalf("unexpected source for width: %+v", src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_StrictUnknownPlacementField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "placements:\n  main:\n    w: 0.5\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for unknown placement field")
	}
}

func TestLoadFromPath_ValidationHasSourceContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "respect_struts: true\nlog_level: loud\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "log_level" || verr.Source.Line != 2 {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
	if !strings.HasPrefix(err.Error(), path+":2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(configD, "10-base.yaml"), "log_level: info\nplacements:\n  left:\n    {x: 0, y: 0, width: 0.3, height: 1}\n")
	writeFile(t, filepath.Join(configD, "20-override.yaml"), "log_level: error\nplacements:\n  right:\n    {x: 0.7, y: 0, width: 0.3, height: 1}\n")
	writeFile(t, filepath.Join(configD, "notes.txt"), "not yaml")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include:\n  - config.d\nlog_level: debug\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "debug" {
		t.Fatalf("expected main file to win, got %q", res.Config.LogLevel)
	}
	if len(res.Config.Placements) != 2 {
		t.Fatalf("expected placements from both includes, got %+v", res.Config.Placements)
	}
	if len(res.Files) != 3 || !strings.HasSuffix(res.Files[0], "10-base.yaml") {
		t.Fatalf("unexpected load order: %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, b, "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestValidate_Placements(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		p       Placement
		wantErr string
	}{
		{"ok", "main", Placement{Width: 0.5, Height: 1}, ""},
		{"overflow allowed", "wide", Placement{X: -0.1, Width: 1.2, Height: 1}, ""},
		{"zero width", "flat", Placement{Height: 1}, "must be > 0"},
		{"uppercase", "Main", Placement{Width: 1, Height: 1}, "lowercase"},
		{"comma", "a,b", Placement{Width: 1, Height: 1}, "lowercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Placements[tt.key] = tt.p
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", "winshift", "config.yaml") {
		t.Fatalf("path = %s", path)
	}
}

func TestValidate_PaletteBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PaletteBackend = "tofi"
	err := cfg.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "palette_backend" {
		t.Fatalf("expected palette_backend validation error, got %v", err)
	}
}
