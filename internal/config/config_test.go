// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "empty service name",
			mutate:  func(c *Config) { c.ServiceName = "  " },
			wantErr: ErrInvalidServiceName,
		},
		{
			name:    "relative shell",
			mutate:  func(c *Config) { c.Shell = "zsh" },
			wantErr: ErrInvalidShell,
		},
		{
			name:    "no interpreter candidates",
			mutate:  func(c *Config) { c.InterpreterCandidates = nil },
			wantErr: ErrNoInterpreterCandidates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_BundleName(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.BundleName(), "Decode QR Code.workflow"; got != want {
		t.Errorf("BundleName() = %q, want %q", got, want)
	}
}

func TestLoad_Defaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defaults := DefaultConfig()
	if cfg.ServiceName != defaults.ServiceName {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, defaults.ServiceName)
	}
	if cfg.Shell != defaults.Shell {
		t.Errorf("Shell = %q, want %q", cfg.Shell, defaults.Shell)
	}
	if cfg.VenvDir != defaults.VenvDir {
		t.Errorf("VenvDir = %q, want %q", cfg.VenvDir, defaults.VenvDir)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	content := "service_name = \"Scan QR\"\nshell = \"/bin/bash\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServiceName != "Scan QR" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "Scan QR")
	}
	if cfg.Shell != "/bin/bash" {
		t.Errorf("Shell = %q, want %q", cfg.Shell, "/bin/bash")
	}
	// Unset keys keep their defaults.
	if cfg.EntryPoint != DefaultConfig().EntryPoint {
		t.Errorf("EntryPoint = %q, want default %q", cfg.EntryPoint, DefaultConfig().EntryPoint)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.toml"),
	})
	if err == nil {
		t.Fatal("Load() with missing explicit config file should fail")
	}
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	content := "shell = \"zsh\"\n" // relative shell is invalid
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), LoadOptions{})
	if !errors.Is(err, ErrInvalidShell) {
		t.Errorf("Load() error = %v, want ErrInvalidShell", err)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	if !strings.Contains(string(data), "service_name = 'Decode QR Code'") &&
		!strings.Contains(string(data), "service_name = \"Decode QR Code\"") {
		t.Errorf("written config missing service_name: %s", data)
	}

	// Second write must refuse to overwrite.
	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault() should refuse to overwrite an existing file")
	}
}

func TestConfig_Render(t *testing.T) {
	out, err := DefaultConfig().Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "entry_point") {
		t.Errorf("Render() missing entry_point key: %s", out)
	}
}
