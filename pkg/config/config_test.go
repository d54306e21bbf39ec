package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/handoff"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBackendURL, EnvHandoff, EnvRedisAddr} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Backend.URL != Default().Backend.URL {
		t.Errorf("Backend.URL = %q, want default", cfg.Backend.URL)
	}
	if cfg.Handoff.Backend != handoff.BackendFile {
		t.Errorf("Handoff.Backend = %q, want %q", cfg.Handoff.Backend, handoff.BackendFile)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[backend]
url = "http://roadmaps.internal:5000"
timeout = "30s"

[handoff]
backend = "redis"
ttl = "10m"

[handoff.redis]
addr = "cache:6379"
db = 2

[server]
addr = "127.0.0.1:9000"

[render.palette]
connector-color = "#e4572e"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Backend.URL != "http://roadmaps.internal:5000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("Backend.Timeout = %v, want 30s", cfg.Backend.Timeout)
	}
	if cfg.Handoff.TTL != 10*time.Minute {
		t.Errorf("Handoff.TTL = %v, want 10m", cfg.Handoff.TTL)
	}
	if cfg.Handoff.Name != handoff.DefaultSlot {
		t.Errorf("Handoff.Name = %q, want default kept", cfg.Handoff.Name)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Render.Palette["connector-color"] != "#e4572e" {
		t.Errorf("Render.Palette = %v", cfg.Render.Palette)
	}

	slot := cfg.HandoffSlot()
	if slot.Backend != handoff.BackendRedis || slot.RedisAddr != "cache:6379" || slot.RedisDB != 2 {
		t.Errorf("HandoffSlot() = %+v", slot)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[backend]\nurl = \"http://file:5000\"\n")
	t.Setenv(EnvBackendURL, "http://env:5000")
	t.Setenv(EnvHandoff, "memory")
	t.Setenv(EnvRedisAddr, "redis:6380")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Backend.URL != "http://env:5000" {
		t.Errorf("Backend.URL = %q, want env value", cfg.Backend.URL)
	}
	if cfg.Handoff.Backend != "memory" {
		t.Errorf("Handoff.Backend = %q, want env value", cfg.Handoff.Backend)
	}
	if cfg.Handoff.Redis.Addr != "redis:6380" {
		t.Errorf("Handoff.Redis.Addr = %q, want env value", cfg.Handoff.Redis.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{
			name: "explicit missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			code: errors.ErrCodeFileNotFound,
		},
		{
			name: "bad toml",
			path: func(t *testing.T) string { return writeConfig(t, "[backend\nurl=") },
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "unknown handoff backend",
			path: func(t *testing.T) string { return writeConfig(t, "[handoff]\nbackend = \"etcd\"\n") },
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "empty url",
			path: func(t *testing.T) string { return writeConfig(t, "[backend]\nurl = \"\"\n") },
			code: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/etc/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/etc/xdg/roadtower/config.toml" {
		t.Errorf("DefaultPath() = %q", path)
	}
}
