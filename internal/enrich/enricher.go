package enrich

import (
	"context"
	"log/slog"

	"plexnote/internal/identity"
	"plexnote/internal/logging"
	"plexnote/internal/media"
	"plexnote/internal/services/tmdb"
)

// Subject bundles the item under notification with its ancestor records and
// resolved provider identity. Season and Series may be nil.
type Subject struct {
	Item     *media.Item
	Season   *media.Item
	Series   *media.Item
	Identity identity.Identity
}

// IsMovie reports whether the subject is a movie.
func (s *Subject) IsMovie() bool { return s.Item.Kind() == media.KindMovie }

// tmdbService is the TMDB surface the enricher consumes.
type tmdbService interface {
	Details(ctx context.Context, tmdbID string, isMovie bool, lang string) (*tmdb.Details, error)
	EpisodeDetails(ctx context.Context, tmdbID string, season, episode int, lang string) (*tmdb.Episode, error)
	SeasonExists(ctx context.Context, tmdbID string, season int) bool
	EpisodeExists(ctx context.Context, tmdbID string, season, episode int) bool
	BackdropURL(ctx context.Context, tmdbID string, isMovie bool) (string, error)
	PosterURL(ctx context.Context, tmdbID string, isMovie bool) (string, error)
	Credits(ctx context.Context, tmdbID string, isMovie bool) (*tmdb.Credits, error)
	AlternativeTitles(ctx context.Context, tmdbID string) ([]string, error)
	Videos(ctx context.Context, tmdbID string, isMovie bool) ([]tmdb.Video, error)
}

// tvdbService is the TVDB surface the enricher consumes.
type tvdbService interface {
	EpisodeTitle(ctx context.Context, episodeID string) (string, error)
	EpisodeOverview(ctx context.Context, episodeID string) (string, error)
	SeasonOverview(ctx context.Context, seasonID string) (string, error)
	SeriesOverview(ctx context.Context, seriesID string) (string, error)
	ArtworkURL(ctx context.Context, seriesID, kind string) (string, error)
}

// Enricher resolves display facets for one run. It is not safe for use by
// multiple runs because the credits lookup is cached per instance.
type Enricher struct {
	tmdb             tmdbService
	tvdb             tvdbService
	plexBaseURL      string
	plexServerID     string
	language         string
	fallbackLanguage string
	placeholderImage string
	logger           *slog.Logger

	creditsFetched bool
	credits        *tmdb.Credits
}

// Options configures an Enricher.
type Options struct {
	TMDB             tmdbService
	TVDB             tvdbService
	PlexBaseURL      string
	PlexServerID     string
	Language         string
	FallbackLanguage string
	PlaceholderImage string
	Logger           *slog.Logger
}

// New constructs an Enricher. TMDB and TVDB services may be nil; their chain
// links are then skipped.
func New(opts Options) *Enricher {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	language := opts.Language
	if language == "" {
		language = "de-DE"
	}
	fallback := opts.FallbackLanguage
	if fallback == "" {
		fallback = "en-US"
	}
	return &Enricher{
		tmdb:             opts.TMDB,
		tvdb:             opts.TVDB,
		plexBaseURL:      opts.PlexBaseURL,
		plexServerID:     opts.PlexServerID,
		language:         language,
		fallbackLanguage: fallback,
		placeholderImage: opts.PlaceholderImage,
		logger:           logging.NewComponentLogger(logger, "enrich"),
	}
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
