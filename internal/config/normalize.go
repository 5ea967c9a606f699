package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeURLs()
	c.normalizeEmbed()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Ledger.Path) == "" {
		c.Ledger.Path = defaultLedgerPath
	}
	if c.Ledger.Path, err = expandPath(c.Ledger.Path); err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}
	if c.Ledger.MaxRecords <= 0 {
		c.Ledger.MaxRecords = defaultLedgerMaxRecords
	}
	return nil
}

func (c *Config) normalizeURLs() {
	c.Webhook.URL = strings.TrimSpace(c.Webhook.URL)
	c.Tautulli.URL = strings.TrimRight(strings.TrimSpace(c.Tautulli.URL), "/")
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	c.TVDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TVDB.BaseURL), "/")
	c.TVDB.ArtworkBaseURL = strings.TrimRight(strings.TrimSpace(c.TVDB.ArtworkBaseURL), "/")
	c.Plex.BaseURL = strings.TrimRight(strings.TrimSpace(c.Plex.BaseURL), "/")
}

func (c *Config) normalizeEmbed() {
	style := strings.ToLower(strings.TrimSpace(c.Embed.Style))
	switch style {
	case "":
		style = defaultEmbedStyle
	case "telegram":
		// Historical name for the poster-only layout.
		style = "compact"
	case "klassisch":
		style = "classic"
	}
	c.Embed.Style = style
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}
