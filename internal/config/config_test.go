package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mdserve.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  addr: ":9000"
  bodyLimitMB: 25
convert:
  workers: 2
  theme: dark
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Server.BodyLimitMB != 25 {
		t.Errorf("BodyLimitMB = %d, want 25", cfg.Server.BodyLimitMB)
	}
	if cfg.Convert.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Convert.Workers)
	}
	if cfg.Convert.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Convert.Theme)
	}

	// Unset fields keep their defaults.
	if cfg.Server.ReadTimeoutSeconds != DefaultReadTimeoutSeconds {
		t.Errorf("ReadTimeoutSeconds = %d, want default %d", cfg.Server.ReadTimeoutSeconds, DefaultReadTimeoutSeconds)
	}
	if cfg.Convert.RenderTimeoutSeconds != DefaultRenderTimeoutSeconds {
		t.Errorf("RenderTimeoutSeconds = %d, want default %d", cfg.Convert.RenderTimeoutSeconds, DefaultRenderTimeoutSeconds)
	}
}

func TestLoad_ExplicitMissingPathFails(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "server:\n  addr: \":8080\"\n  bogus: true\n")

	_, err := Load(path)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("Load() error = %v, want ErrConfigParse", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "server: [not a map\n")

	_, err := Load(path)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("Load() error = %v, want ErrConfigParse", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Default()

	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(*Config) {}, true},
		{"explicit workers", func(c *Config) { c.Convert.Workers = 4 }, true},
		{"dark theme", func(c *Config) { c.Convert.Theme = "dark" }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, false},
		{"zero body limit", func(c *Config) { c.Server.BodyLimitMB = 0 }, false},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeoutSeconds = 0 }, false},
		{"negative workers", func(c *Config) { c.Convert.Workers = -1 }, false},
		{"zero render timeout", func(c *Config) { c.Convert.RenderTimeoutSeconds = 0 }, false},
		{"unknown theme", func(c *Config) { c.Convert.Theme = "solarized" }, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if !tt.wantOK && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
