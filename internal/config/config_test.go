package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test default values
	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "mcp-doc-convert" {
		t.Errorf("Expected default server name to be 'mcp-doc-convert', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 50*1024*1024 {
		t.Errorf("Expected default max file size to be 50MB, got %d", cfg.MaxFileSize)
	}

	// Test that the input directory is set to current working directory by default
	currentDir, _ := os.Getwd()
	if cfg.InputDirectory != currentDir {
		t.Errorf("Expected default input directory to be '%s', got '%s'", currentDir, cfg.InputDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "valid config - server mode",
			config: &Config{
				Mode:           "server",
				Host:           "127.0.0.1",
				Port:           8080,
				InputDirectory: tmpDir,
				LogLevel:       "info",
				MaxFileSize:    1024,
			},
			wantErr: false,
		},
		{
			name: "valid config - separate output directory",
			config: &Config{
				Mode:            "stdio",
				InputDirectory:  tmpDir,
				OutputDirectory: filepath.Join(tmpDir, "out"),
				LogLevel:        "info",
				MaxFileSize:     1024,
			},
			wantErr: false,
		},
		{
			name: "invalid mode",
			config: &Config{
				Mode:           "invalid",
				Host:           "127.0.0.1",
				Port:           8080,
				InputDirectory: tmpDir,
				LogLevel:       "info",
				MaxFileSize:    1024,
			},
			wantErr: true,
		},
		{
			name: "invalid port - server mode",
			config: &Config{
				Mode:           "server",
				Host:           "127.0.0.1",
				Port:           0,
				InputDirectory: tmpDir,
				LogLevel:       "info",
				MaxFileSize:    1024,
			},
			wantErr: true,
		},
		{
			name: "empty input directory",
			config: &Config{
				Mode:        "stdio",
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "non-positive max file size",
			config: &Config{
				Mode:           "stdio",
				InputDirectory: tmpDir,
				LogLevel:       "info",
				MaxFileSize:    0,
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: &Config{
				Mode:           "stdio",
				InputDirectory: tmpDir,
				LogLevel:       "verbose",
				MaxFileSize:    1024,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesMissingDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{
		Mode:            "stdio",
		InputDirectory:  filepath.Join(tmpDir, "in"),
		OutputDirectory: filepath.Join(tmpDir, "out"),
		LogLevel:        "info",
		MaxFileSize:     1024,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	for _, dir := range []string{cfg.InputDirectory, cfg.OutputDirectory} {
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("expected directory %s to be created: %v", dir, err)
		}
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := &Config{Host: "0.0.0.0", Port: 9090}
	if got := cfg.Address(); got != "0.0.0.0:9090" {
		t.Errorf("Address() = %s, want 0.0.0.0:9090", got)
	}
}

func TestConfigModeHelpers(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.IsStdioMode() || cfg.IsServerMode() {
		t.Error("default config should report stdio mode")
	}

	cfg.Mode = ModeServer
	if cfg.IsStdioMode() || !cfg.IsServerMode() {
		t.Error("server config should report server mode")
	}
}

func TestConfigIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsDebug() {
		t.Error("info level should not report debug")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("debug level should report debug")
	}
}

func TestEffectiveOutputDirectory(t *testing.T) {
	cfg := &Config{InputDirectory: "/in"}
	if got := cfg.EffectiveOutputDirectory(); got != "/in" {
		t.Errorf("EffectiveOutputDirectory() = %s, want /in", got)
	}
	cfg.OutputDirectory = "/out"
	if got := cfg.EffectiveOutputDirectory(); got != "/out" {
		t.Errorf("EffectiveOutputDirectory() = %s, want /out", got)
	}
}

func TestSplitDirList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"/a", []string{"/a"}},
		{"/a,/b", []string{"/a", "/b"}},
		{" /a , ,/b ", []string{"/a", "/b"}},
	}
	for _, tt := range tests {
		if got := splitDirList(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitDirList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
