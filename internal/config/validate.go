package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validate ensures the configuration is usable. Missing required settings
// abort before any work starts; optional providers may stay unset and the
// enrichment chain degrades around them.
func (c *Config) Validate() error {
	if err := c.validateRequired(); err != nil {
		return err
	}
	if err := c.validateEmbed(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRequired() error {
	missing := make([]string, 0, 4)
	if c.Webhook.URL == "" {
		missing = append(missing, "webhook.url")
	}
	if c.Tautulli.URL == "" {
		missing = append(missing, "tautulli.url")
	}
	if c.Tautulli.APIKey == "" {
		missing = append(missing, "tautulli.api_key")
	}
	if strings.TrimSpace(c.Plex.ServerID) == "" {
		missing = append(missing, "plex.server_id")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/plexnote/config.toml"
		}
		return fmt.Errorf("missing required configuration: %s (edit %s or create it with 'plexnote config init')",
			strings.Join(missing, ", "), defaultPath)
	}
	return nil
}

func (c *Config) validateEmbed() error {
	switch c.Embed.Style {
	case "boxed", "compact", "classic":
	default:
		return fmt.Errorf("embed.style must be boxed, compact, or classic (got %q)", c.Embed.Style)
	}
	if err := ensurePositiveMap(map[string]int{
		"embed.max_line_len":       c.Embed.MaxLineLen,
		"embed.max_lines":          c.Embed.MaxLines,
		"embed.plot_limit":         c.Embed.PlotLimit,
		"embed.max_word_split_len": c.Embed.MaxWordSplitLen,
		"embed.single_line_limit":  c.Embed.SingleLineLimit,
	}); err != nil {
		return err
	}
	if c.Embed.MaxWordSplitLen <= c.Embed.MaxLineLen {
		return errors.New("embed.max_word_split_len must exceed embed.max_line_len")
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	return ensurePositiveMap(map[string]int{
		"webhook.request_timeout":     c.Webhook.RequestTimeout,
		"webhook.retry_attempts":      c.Webhook.RetryAttempts,
		"webhook.retry_after_default": c.Webhook.RetryAfterDefault,
		"tautulli.request_timeout":    c.Tautulli.RequestTimeout,
		"tmdb.request_timeout":        c.TMDB.RequestTimeout,
		"tvdb.request_timeout":        c.TVDB.RequestTimeout,
		"tvdb.token_ttl_seconds":      c.TVDB.TokenTTLSeconds,
		"ledger.max_records":          c.Ledger.MaxRecords,
	})
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
