package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plexnote/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
[webhook]
url = "https://discord.com/api/webhooks/1/abc"

[tautulli]
url = "http://localhost:8181/"
api_key = "secret"

[plex]
server_id = "abc123"
`

func TestLoadAppliesDefaultsAndNormalizes(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected existing config at %q", resolved)
	}
	if cfg.Tautulli.URL != "http://localhost:8181" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Tautulli.URL)
	}
	if cfg.Embed.Style != "boxed" {
		t.Fatalf("expected default style boxed, got %q", cfg.Embed.Style)
	}
	if cfg.Embed.PlotLimit != 150 || cfg.Embed.MaxLines != 4 {
		t.Fatalf("unexpected embed defaults: %+v", cfg.Embed)
	}
	if cfg.Ledger.MaxRecords != 200 {
		t.Fatalf("expected default ledger cap, got %d", cfg.Ledger.MaxRecords)
	}
	if !filepath.IsAbs(cfg.Ledger.Path) {
		t.Fatalf("expected expanded ledger path, got %q", cfg.Ledger.Path)
	}
}

func TestLoadRejectsMissingRequiredSettings(t *testing.T) {
	path := writeConfig(t, `
[webhook]
url = "https://discord.com/api/webhooks/1/abc"
`)

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for missing required settings")
	}
	for _, want := range []string{"tautulli.url", "tautulli.api_key", "plex.server_id"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error %q", want, err)
		}
	}
}

func TestLoadRejectsUnknownStyle(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[embed]
style = "fancy"
`)

	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "embed.style") {
		t.Fatalf("expected embed.style error, got %v", err)
	}
}

func TestNormalizeMapsLegacyStyleNames(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
[embed]
style = "telegram"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Embed.Style != "compact" {
		t.Fatalf("expected telegram mapped to compact, got %q", cfg.Embed.Style)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[webhook]") {
		t.Fatal("sample config missing webhook section")
	}
}
