package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Webhook contains the Discord webhook delivery settings.
type Webhook struct {
	URL               string `toml:"url"`
	RequestTimeout    int    `toml:"request_timeout"`
	RetryAttempts     int    `toml:"retry_attempts"`
	RetryAfterDefault int    `toml:"retry_after_default"`
}

// Tautulli contains the primary catalog collaborator settings.
type Tautulli struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	RequestTimeout int    `toml:"request_timeout"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey           string `toml:"api_key"`
	BaseURL          string `toml:"base_url"`
	ImageBaseURL     string `toml:"image_base_url"`
	Language         string `toml:"language"`
	FallbackLanguage string `toml:"fallback_language"`
	RequestTimeout   int    `toml:"request_timeout"`
}

// TVDB contains configuration for the TheTVDB v4 API.
type TVDB struct {
	APIKey           string `toml:"api_key"`
	BaseURL          string `toml:"base_url"`
	ArtworkBaseURL   string `toml:"artwork_base_url"`
	Language         string `toml:"language"`
	FallbackLanguage string `toml:"fallback_language"`
	TokenTTLSeconds  int    `toml:"token_ttl_seconds"`
	RequestTimeout   int    `toml:"request_timeout"`
}

// Plex contains the settings used to build deep links into the Plex app.
type Plex struct {
	BaseURL  string `toml:"base_url"`
	ServerID string `toml:"server_id"`
}

// Embed contains layout settings for the composed notification message.
type Embed struct {
	Style            string `toml:"style"` // boxed | compact | classic
	MaxLineLen       int    `toml:"max_line_len"`
	MaxLines         int    `toml:"max_lines"`
	PlotLimit        int    `toml:"plot_limit"`
	MaxWordSplitLen  int    `toml:"max_word_split_len"`
	SingleLineLimit  int    `toml:"single_line_limit"`
	PlaceholderImage string `toml:"placeholder_image"`
}

// Ledger contains the posted-items ledger settings.
type Ledger struct {
	Path       string `toml:"path"`
	MaxRecords int    `toml:"max_records"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for plexnote.
//
// Sections by subsystem:
//   - Webhook: Discord delivery endpoint and retry policy
//   - Tautulli: catalog collaborator supplying item metadata
//   - TMDB: primary external metadata provider
//   - TVDB: secondary external metadata provider (TV only)
//   - Plex: deep-link construction
//   - Embed: layout style and text limits
//   - Ledger: dedup ledger path and cap
//   - Logging: log format and level
type Config struct {
	Webhook  Webhook  `toml:"webhook"`
	Tautulli Tautulli `toml:"tautulli"`
	TMDB     TMDB     `toml:"tmdb"`
	TVDB     TVDB     `toml:"tvdb"`
	Plex     Plex     `toml:"plex"`
	Embed    Embed    `toml:"embed"`
	Ledger   Ledger   `toml:"ledger"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/plexnote/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("plexnote.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories needed before a run starts.
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Ledger.Path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory %q: %w", dir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
