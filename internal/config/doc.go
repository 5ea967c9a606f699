// Package config loads, normalizes, and validates plexnote configuration.
//
// Configuration lives in a TOML file, by default at
// ~/.config/plexnote/config.toml with a plexnote.toml in the working directory
// as a project-local fallback. Load applies defaults, expands ~ paths, trims
// URLs, and rejects configurations missing the webhook URL, Tautulli
// credentials, or the Plex server identifier. Provider API keys are optional;
// an unset provider is simply skipped by the enrichment chain.
package config
