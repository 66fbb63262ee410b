package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clipper.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, "max_clip_seconds: 120\nspeaker_names_in_transcript: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxClipSeconds != 120 {
		t.Errorf("MaxClipSeconds = %v, want 120", cfg.MaxClipSeconds)
	}
	if cfg.SpeakerNamesInTranscript {
		t.Error("SpeakerNamesInTranscript should be false")
	}
	if cfg.MinClipSeconds != 5 || cfg.Addr != ":8121" {
		t.Errorf("unset fields should keep defaults, got %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "max_clip_seconds: [",
		"negative min":  "min_clip_seconds: -1\n",
		"max below min": "max_clip_seconds: 3\nmin_clip_seconds: 5\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
