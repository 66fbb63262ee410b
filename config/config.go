package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server and clip settings.
type Config struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db_path"`

	MaxClipSeconds float64 `yaml:"max_clip_seconds"`
	MinClipSeconds float64 `yaml:"min_clip_seconds"`

	// SpeakerNamesInTranscript is set when transcript words carry speaker
	// names inline, as in "IRA GLASS: Hello".
	SpeakerNamesInTranscript bool `yaml:"speaker_names_in_transcript"`
}

func Default() Config {
	return Config{
		Addr:                     ":8121",
		DBPath:                   "./clipper.db",
		MaxClipSeconds:           90,
		MinClipSeconds:           5,
		SpeakerNamesInTranscript: true,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.MinClipSeconds < 0 {
		return errors.New("min_clip_seconds must not be negative")
	}
	if c.MaxClipSeconds <= c.MinClipSeconds {
		return fmt.Errorf("max_clip_seconds (%v) must exceed min_clip_seconds (%v)", c.MaxClipSeconds, c.MinClipSeconds)
	}
	return nil
}
