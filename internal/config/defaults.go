package config

const (
	defaultWebhookTimeout       = 15
	defaultWebhookRetryAttempts = 3
	defaultRetryAfterSeconds    = 5
	defaultTautulliTimeout      = 20
	defaultTMDBBaseURL          = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL     = "https://image.tmdb.org/t/p"
	defaultTMDBLanguage         = "de-DE"
	defaultTMDBFallbackLanguage = "en-US"
	defaultTMDBTimeout          = 4
	defaultTVDBBaseURL          = "https://api4.thetvdb.com/v4"
	defaultTVDBArtworkBaseURL   = "https://artworks.thetvdb.com/banners"
	defaultTVDBLanguage         = "deu"
	defaultTVDBFallbackLanguage = "eng"
	// TVDB session tokens last roughly a day; expire ours at 23 hours so a
	// token is never used right at the provider's own boundary.
	defaultTVDBTokenTTL       = 82800
	defaultTVDBTimeout        = 20
	defaultPlexBaseURL        = "https://app.plex.tv"
	defaultEmbedStyle         = "boxed"
	defaultMaxLineLen         = 45
	defaultMaxLines           = 4
	defaultPlotLimit          = 150
	defaultMaxWordSplitLen    = 60
	defaultSingleLineLimit    = 36
	defaultPlaceholderImage   = "https://cdn.discordapp.com/attachments/000000000000000000/000000000000000000/placeholder_image.webp"
	defaultLedgerPath         = "~/.local/share/plexnote/posted.json"
	defaultLedgerMaxRecords   = 200
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Webhook: Webhook{
			RequestTimeout:    defaultWebhookTimeout,
			RetryAttempts:     defaultWebhookRetryAttempts,
			RetryAfterDefault: defaultRetryAfterSeconds,
		},
		Tautulli: Tautulli{
			RequestTimeout: defaultTautulliTimeout,
		},
		TMDB: TMDB{
			BaseURL:          defaultTMDBBaseURL,
			ImageBaseURL:     defaultTMDBImageBaseURL,
			Language:         defaultTMDBLanguage,
			FallbackLanguage: defaultTMDBFallbackLanguage,
			RequestTimeout:   defaultTMDBTimeout,
		},
		TVDB: TVDB{
			BaseURL:          defaultTVDBBaseURL,
			ArtworkBaseURL:   defaultTVDBArtworkBaseURL,
			Language:         defaultTVDBLanguage,
			FallbackLanguage: defaultTVDBFallbackLanguage,
			TokenTTLSeconds:  defaultTVDBTokenTTL,
			RequestTimeout:   defaultTVDBTimeout,
		},
		Plex: Plex{
			BaseURL: defaultPlexBaseURL,
		},
		Embed: Embed{
			Style:            defaultEmbedStyle,
			MaxLineLen:       defaultMaxLineLen,
			MaxLines:         defaultMaxLines,
			PlotLimit:        defaultPlotLimit,
			MaxWordSplitLen:  defaultMaxWordSplitLen,
			SingleLineLimit:  defaultSingleLineLimit,
			PlaceholderImage: defaultPlaceholderImage,
		},
		Ledger: Ledger{
			Path:       defaultLedgerPath,
			MaxRecords: defaultLedgerMaxRecords,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
