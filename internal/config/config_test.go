package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
log:
  level: debug
crosshair:
  size_fraction: 0.1
reorder_face_landmarks: false
discovery:
  exclude_suffixes: [".svn-base", ".orig"]
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Crosshair.SizeFraction != 0.1 {
		t.Errorf("SizeFraction = %g", cfg.Crosshair.SizeFraction)
	}
	if cfg.Crosshair.LineWidth != 2 {
		t.Errorf("LineWidth = %g, want default 2", cfg.Crosshair.LineWidth)
	}
	if cfg.ReorderFaceLandmarks {
		t.Error("ReorderFaceLandmarks = true, want false from file")
	}
	if len(cfg.Discovery.ExcludeSuffixes) != 2 {
		t.Errorf("ExcludeSuffixes = %v", cfg.Discovery.ExcludeSuffixes)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of missing explicit file returned no error")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("crosshair:\n  size_fraction: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted size_fraction 2")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"POINT_TAGGER_LOG_LEVEL":        "warn",
		"POINT_TAGGER_REORDER":          "false",
		"POINT_TAGGER_EXCLUDE_SUFFIXES": ".svn-base, .bak ,",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.ReorderFaceLandmarks {
		t.Error("ReorderFaceLandmarks still true")
	}
	want := []string{".svn-base", ".bak"}
	if len(cfg.Discovery.ExcludeSuffixes) != len(want) {
		t.Fatalf("ExcludeSuffixes = %v", cfg.Discovery.ExcludeSuffixes)
	}
	for i := range want {
		if cfg.Discovery.ExcludeSuffixes[i] != want[i] {
			t.Errorf("ExcludeSuffixes[%d] = %q, want %q", i, cfg.Discovery.ExcludeSuffixes[i], want[i])
		}
	}
}

func TestApplyEnvBadBool(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "POINT_TAGGER_JSON_LOGS" {
			return "maybe", true
		}
		return "", false
	}
	if err := Default().applyEnv(lookup); err == nil {
		t.Error("applyEnv accepted a non-boolean")
	}
}
