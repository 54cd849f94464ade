package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gerunddev/mdtree/internal/sanitize"
)

// withConfigPath points ConfigPath at path for the duration of the test
func withConfigPath(t *testing.T, path string) {
	t.Helper()
	original := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = original
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SanitizationMode != "standard" {
		t.Errorf("Expected standard mode, got %q", cfg.SanitizationMode)
	}
	if cfg.MaxNameLength != 20 {
		t.Errorf("Expected MaxNameLength 20, got %d", cfg.MaxNameLength)
	}
	if cfg.ShortenLength != 16 {
		t.Errorf("Expected ShortenLength 16, got %d", cfg.ShortenLength)
	}
	if cfg.AllowEmptyDirectories {
		t.Error("Expected AllowEmptyDirectories to be false")
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SanitizationMode: "alternative",
			MaxNameLength:    20,
			ShortenLength:    16,
			LogFile:          "/tmp/mdtree-test.log",
			LogLevel:         "debug",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "unknown mode", mutate: func(c *Config) { c.SanitizationMode = "fancy" }, wantErr: true},
		{name: "zero max length", mutate: func(c *Config) { c.MaxNameLength = 0 }, wantErr: true},
		{name: "negative shorten length", mutate: func(c *Config) { c.ShortenLength = -1 }, wantErr: true},
		{name: "empty log_file", mutate: func(c *Config) { c.LogFile = "" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "empty log level", mutate: func(c *Config) { c.LogLevel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")
	withConfigPath(t, testConfigPath)

	testCfg := &Config{
		OutputDir:             filepath.Join(tmpDir, "out"),
		SanitizationMode:      "alternative",
		AllowEmptyDirectories: true,
		MaxNameLength:         32,
		ShortenLength:         12,
		LogFile:               filepath.Join(tmpDir, "mdtree.log"),
		LogLevel:              "debug",
	}

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if *loadedCfg != *testCfg {
		t.Errorf("Loaded config mismatch:\n got %+v\nwant %+v", loadedCfg, testCfg)
	}
	if loadedCfg.Mode() != sanitize.Alternative {
		t.Errorf("Mode() = %v, want alternative", loadedCfg.Mode())
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	withConfigPath(t, filepath.Join(t.TempDir(), "nonexistent.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.MaxNameLength != sanitize.DefaultMaxLength {
		t.Errorf("Expected default max length, got %d", cfg.MaxNameLength)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	withConfigPath(t, path)

	if err := os.WriteFile(path, []byte("sanitization_mode: alt\nallow_empty_directories: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mode() != sanitize.Alternative {
		t.Errorf("Mode() = %v, want alternative", cfg.Mode())
	}
	if !cfg.AllowEmptyDirectories {
		t.Error("Expected AllowEmptyDirectories from file")
	}
	if cfg.MaxNameLength != 20 || cfg.ShortenLength != 16 {
		t.Errorf("Missing keys should keep defaults, got max=%d shorten=%d", cfg.MaxNameLength, cfg.ShortenLength)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "max_name_length: [1, 2\n"},
		{name: "bad mode", content: "sanitization_mode: fancy\n"},
		{name: "zero length", content: "max_name_length: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			withConfigPath(t, path)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "tilde only", input: "~", want: homeDir},
		{name: "tilde expansion", input: "~/notes", want: filepath.Join(homeDir, "notes")},
		{name: "absolute path", input: "/tmp/test", want: "/tmp/test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath() error = %v", err)
			}
			if result != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, result, tt.want)
			}
		})
	}
}

func TestConfigPathsExpanded(t *testing.T) {
	withConfigPath(t, filepath.Join(t.TempDir(), "config.yaml"))

	testCfg := DefaultConfig()
	testCfg.OutputDir = "~/mdtree-out"
	testCfg.LogFile = "~/mdtree.log"

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.OutputDir[0] == '~' {
		t.Error("OutputDir was not expanded")
	}
	if loadedCfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}
