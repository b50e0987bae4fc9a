package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "http://localhost:11434" {
		t.Errorf("Host = %q, want default Ollama host", cfg.Host)
	}
	if cfg.Model != "llava-phi3" {
		t.Errorf("Model = %q, want llava-phi3", cfg.Model)
	}
	if cfg.Delimiter != "_" {
		t.Errorf("Delimiter = %q, want '_'", cfg.Delimiter)
	}
	if cfg.JPEGQuality != 90 {
		t.Errorf("JPEGQuality = %d, want 90", cfg.JPEGQuality)
	}
	if cfg.WatchDebounceMS != 500 {
		t.Errorf("WatchDebounceMS = %d, want 500", cfg.WatchDebounceMS)
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Model != "llava-phi3" {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "model: bakllava\ndelimiter: '-'\njpeg_quality: 75\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Model != "bakllava" {
		t.Errorf("Model = %q, want bakllava", cfg.Model)
	}
	if cfg.Delimiter != "-" {
		t.Errorf("Delimiter = %q, want '-'", cfg.Delimiter)
	}
	if cfg.JPEGQuality != 75 {
		t.Errorf("JPEGQuality = %d, want 75", cfg.JPEGQuality)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Host != "http://localhost:11434" {
		t.Errorf("Host = %q, want default", cfg.Host)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() expected error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434")
	t.Setenv("IMGRENAME_MODEL", "llava:13b")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("host: http://file-host:11434\nmodel: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Host != "http://gpu-box:11434" {
		t.Errorf("Host = %q, env should win over file", cfg.Host)
	}
	if cfg.Model != "llava:13b" {
		t.Errorf("Model = %q, env should win over file", cfg.Model)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Model = "moondream"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Model != "moondream" {
		t.Errorf("Model = %q, want moondream", loaded.Model)
	}
}
