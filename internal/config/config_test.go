package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "SERVER_ADDR", "MESSAGING_DOMAIN", "DATABASE_URL", "UPSTREAM_CHECK_INTERVAL", "ADS_CLIENT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if !cfg.IsDev() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.ServerAddr != ":3000" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr)
	}
	if cfg.MessagingDomain != "wa.me" {
		t.Errorf("MessagingDomain = %q", cfg.MessagingDomain)
	}
	if cfg.IsStatsEnabled() {
		t.Error("stats enabled without DATABASE_URL")
	}
	if cfg.IsAdsEnabled() {
		t.Error("ads enabled without ADS_CLIENT")
	}
	if cfg.UpstreamCheckInterval != 5*time.Minute {
		t.Errorf("UpstreamCheckInterval = %v", cfg.UpstreamCheckInterval)
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", time.Minute},
		{"duration", "90s", 90 * time.Second},
		{"seconds", "30", 30 * time.Second},
		{"zero disables", "0", 0},
		{"garbage", "soon", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INTERVAL", tt.value)
			if got := getDuration("TEST_INTERVAL", time.Minute); got != tt.want {
				t.Errorf("getDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.yaml"))
		cfg, err := LoadYAMLConfig()
		if err != nil || cfg != nil {
			t.Fatalf("LoadYAMLConfig() = (%v, %v), want (nil, nil)", cfg, err)
		}
		catalog, err := cfg.Catalog()
		if err != nil || catalog.Len() != 20 {
			t.Errorf("Catalog() on nil config = (%v, %v)", catalog, err)
		}
	})

	t.Run("custom countries", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		body := `countries:
  - code: NZ
    name: New Zealand
    dial_code: "+64"
    mask: "## ### ####"
  - code: SG
    name: Singapore
    dial_code: "+65"
`
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("CONFIG_FILE", path)

		cfg, err := LoadYAMLConfig()
		if err != nil {
			t.Fatalf("LoadYAMLConfig() error = %v", err)
		}
		catalog, err := cfg.Catalog()
		if err != nil {
			t.Fatalf("Catalog() error = %v", err)
		}
		if catalog.Len() != 2 || catalog.First().Code != "NZ" {
			t.Errorf("catalog = %+v", catalog.All())
		}
		if sg, _ := catalog.ByCode("SG"); sg.HasMask() {
			t.Error("SG should have no mask")
		}
	})

	t.Run("invalid country", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("countries:\n  - code: nz\n    name: x\n    dial_code: \"64\"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg, err := loadYAMLFile(path)
		if err != nil {
			t.Fatalf("loadYAMLFile() error = %v", err)
		}
		if _, err := cfg.Catalog(); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		if err := os.WriteFile(path, []byte("countries: [\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := loadYAMLFile(path); err == nil {
			t.Error("expected parse error")
		}
	})
}
