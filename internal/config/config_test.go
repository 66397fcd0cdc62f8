package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("expected log format 'console', got %s", cfg.Logging.Format)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if cfg.Kernel.Center != CenterMedian {
		t.Errorf("expected center %q, got %q", CenterMedian, cfg.Kernel.Center)
	}
	if cfg.Kernel.PerPolygon {
		t.Error("expected per_polygon to be false by default")
	}

	if cfg.Output.Format != OutputText {
		t.Errorf("expected output format %q, got %q", OutputText, cfg.Output.Format)
	}
	if cfg.Output.Precision != 4 {
		t.Errorf("expected precision 4, got %d", cfg.Output.Precision)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
logging:
  level: "debug"
  format: "json"
  log_file: "meshtool.log"

kernel:
  center: "volume"
  per_polygon: true

output:
  format: "yaml"
  precision: 6
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got %s", cfg.Logging.Format)
	}
	if cfg.Logging.LogFile != "meshtool.log" {
		t.Errorf("expected log file 'meshtool.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Kernel.Center != CenterVolume {
		t.Errorf("expected center 'volume', got %s", cfg.Kernel.Center)
	}
	if !cfg.Kernel.PerPolygon {
		t.Error("expected per_polygon to be true")
	}
	if cfg.Output.Format != OutputYAML {
		t.Errorf("expected output format 'yaml', got %s", cfg.Output.Format)
	}
	if cfg.Output.Precision != 6 {
		t.Errorf("expected precision 6, got %d", cfg.Output.Precision)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("kernel:\n  center: bounds\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Kernel.Center != CenterBounds {
		t.Errorf("expected center 'bounds', got %s", cfg.Kernel.Center)
	}
	// Untouched sections keep their defaults.
	if cfg.Output.Precision != 4 || cfg.Logging.Level != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
output:
  precision: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meshtool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"center", func(c *Config) { c.Kernel.Center = "mass" }},
		{"output format", func(c *Config) { c.Output.Format = "json" }},
		{"negative precision", func(c *Config) { c.Output.Precision = -1 }},
		{"large precision", func(c *Config) { c.Output.Precision = 12 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS.
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestConfigDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	dir := ConfigDir()
	if filepath.Base(dir) != "polymesh" {
		t.Errorf("ConfigDir() = %s, want a polymesh directory", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)
	t.Setenv(EnvConfig, "")

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("output:\n  precision: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestFindConfigFileUserDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(t.TempDir())

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(EnvConfig, "")

	want := filepath.Join(xdg, "polymesh", FileName)
	if err := os.MkdirAll(filepath.Dir(want), 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(want, []byte("output:\n  precision: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if got := findConfigFile(); got != want {
		t.Errorf("findConfigFile() = %q, want %q", got, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// A file in the working directory loses to the environment.
	if err := os.WriteFile(FileName, []byte("output:\n  precision: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	envPath := filepath.Join(tmpDir, "env.yaml")
	if err := os.WriteFile(envPath, []byte("output:\n  precision: 8\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, envPath)

	if got := findConfigFile(); got != envPath {
		t.Errorf("findConfigFile() = %q, want %q", got, envPath)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Precision != 8 {
		t.Errorf("expected precision 8 from %s, got %d", EnvConfig, cfg.Output.Precision)
	}

	// A named file that does not exist is an error, not a silent default.
	t.Setenv(EnvConfig, filepath.Join(tmpDir, "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("Load() with a missing env config returned nil error")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "log flags",
			setup: func() {
				*flagLogFile = "run.log"
				*flagJSONLog = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
				if cfg.Logging.Format != "json" {
					t.Errorf("expected log format json, got %s", cfg.Logging.Format)
				}
			},
			teardown: func() {
				*flagLogFile = ""
				*flagJSONLog = false
			},
		},
		{
			name: "kernel flags",
			setup: func() {
				*flagCenter = CenterSurface
				*flagPerPolygon = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Kernel.Center != CenterSurface {
					t.Errorf("expected center surface, got %s", cfg.Kernel.Center)
				}
				if !cfg.Kernel.PerPolygon {
					t.Error("expected per_polygon to be true with flag")
				}
			},
			teardown: func() {
				*flagCenter = ""
				*flagPerPolygon = false
			},
		},
		{
			name: "output flags",
			setup: func() {
				*flagFormat = OutputYAML
				*flagPrecision = 0
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Format != OutputYAML {
					t.Errorf("expected output format yaml, got %s", cfg.Output.Format)
				}
				if cfg.Output.Precision != 0 {
					t.Errorf("expected precision 0, got %d", cfg.Output.Precision)
				}
			},
			teardown: func() {
				*flagFormat = ""
				*flagPrecision = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
kernel:
  center: bounds
output:
  precision: 2
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagCenter = CenterVolume
	defer func() {
		*flagConfig = ""
		*flagCenter = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Center comes from the flag, precision from the file.
	if cfg.Kernel.Center != CenterVolume {
		t.Errorf("expected center volume from flag, got %s", cfg.Kernel.Center)
	}
	if cfg.Output.Precision != 2 {
		t.Errorf("expected precision 2 from file, got %d", cfg.Output.Precision)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("output:\n  format: html\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Kernel.Center = CenterSurface
	cfg.Output.Precision = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("LoadFile() = %+v, want %+v", got, cfg)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved config missing: %v", err)
	}
}
