package identity

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"plexnote/internal/logging"
	"plexnote/internal/media"
)

// Identity holds the provider IDs resolved for one library item. Absent IDs
// are empty strings.
type Identity struct {
	TMDBID        string
	TVDBSeriesID  string
	TVDBSeasonID  string
	TVDBEpisodeID string
	IMDBID        string
}

var (
	tmdbGuidRe        = regexp.MustCompile(`^tmdb://(\d+)`)
	tvdbGuidRe        = regexp.MustCompile(`^tvdb://(\d+)`)
	tvdbSeasonGuidRe  = regexp.MustCompile(`^tvdb-season://(\d+)`)
	tvdbEpisodeGuidRe = regexp.MustCompile(`^tvdb-episode://(\d+)`)
	imdbGuidRe        = regexp.MustCompile(`^imdb://(?:tt)?(\d+)`)
)

// tmdbFinder is the TMDB lookup surface used for cross-resolution.
type tmdbFinder interface {
	FindByTVDB(ctx context.Context, tvdbID string) (string, error)
	SearchTVID(ctx context.Context, query string, year int) (string, error)
	SearchMovieID(ctx context.Context, query string, year int) (string, error)
}

// Resolver derives provider identities from guid lists.
type Resolver struct {
	tmdb   tmdbFinder
	logger *slog.Logger
}

// NewResolver constructs a Resolver. The TMDB client may be nil, in which
// case cross-resolution is skipped.
func NewResolver(tmdb tmdbFinder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		tmdb:   tmdb,
		logger: logging.NewComponentLogger(logger, "identity"),
	}
}

// Resolve scans the guids of the item and its season and series records and
// returns the provider identity. Season and series may be nil.
//
// Dedicated namespaces are scanned item first, then season, then series. The
// bare tvdb series ID is the exception: it is scanned series first, so that
// an episode-level bare tvdb guid cannot shadow the real series ID and the
// demotion check below stays meaningful.
func (r *Resolver) Resolve(ctx context.Context, item, season, series *media.Item) Identity {
	sources := guidSources(item, season, series)
	reversed := guidSources(series, season, item)

	id := Identity{
		TMDBID:       firstMatch(sources, tmdbGuidRe),
		TVDBSeriesID: firstMatch(reversed, tvdbGuidRe),
		IMDBID:       firstMatch(sources, imdbGuidRe),
	}

	// Plex sometimes tags episodes and seasons with a bare tvdb guid. Such
	// an ID is only trusted when it differs from the resolved series ID.
	id.TVDBEpisodeID = firstMatch(sources, tvdbEpisodeGuidRe)
	if id.TVDBEpisodeID == "" {
		if fb := firstMatch(sources, tvdbGuidRe); fb != "" && fb != id.TVDBSeriesID {
			id.TVDBEpisodeID = fb
		}
	}
	id.TVDBSeasonID = firstMatch(sources, tvdbSeasonGuidRe)
	if id.TVDBSeasonID == "" {
		if fb := firstMatch(sources, tvdbGuidRe); fb != "" && fb != id.TVDBSeriesID {
			id.TVDBSeasonID = fb
		}
	}

	if id.TMDBID == "" {
		id.TMDBID = r.crossResolveTMDB(ctx, item, season, series, id.TVDBSeriesID)
	}
	return id
}

// crossResolveTMDB recovers a missing TMDB ID via the external-ID lookup and
// then by name search. Every failure degrades to an absent ID.
func (r *Resolver) crossResolveTMDB(ctx context.Context, item, season, series *media.Item, tvdbSeriesID string) string {
	if r.tmdb == nil {
		return ""
	}
	if tvdbSeriesID != "" {
		tmdbID, err := r.tmdb.FindByTVDB(ctx, tvdbSeriesID)
		if err != nil {
			r.logger.Warn("tmdb external-id lookup failed",
				logging.String("tvdb_id", tvdbSeriesID), logging.Error(err))
		} else if tmdbID != "" {
			return tmdbID
		}
	}

	if item.Kind() == media.KindMovie {
		tmdbID, err := r.tmdb.SearchMovieID(ctx, item.Title, item.Year.Int())
		if err != nil {
			r.logger.Warn("tmdb movie search failed",
				logging.String("title", item.Title), logging.Error(err))
			return ""
		}
		return tmdbID
	}

	name, year := seriesNameYear(item, season, series)
	if name == "" {
		return ""
	}
	tmdbID, err := r.tmdb.SearchTVID(ctx, name, year)
	if err != nil {
		r.logger.Warn("tmdb tv search failed",
			logging.String("title", name), logging.Error(err))
		return ""
	}
	return tmdbID
}

func guidSources(items ...*media.Item) [][]string {
	sources := make([][]string, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		sources = append(sources, it.AllGuids())
	}
	return sources
}

func firstMatch(sources [][]string, re *regexp.Regexp) string {
	for _, guids := range sources {
		for _, g := range guids {
			if m := re.FindStringSubmatch(g); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

func seriesNameYear(item, season, series *media.Item) (string, int) {
	name := ""
	year := 0
	if series != nil {
		name = series.Title
		year = series.Year.Int()
	}
	if name == "" {
		name = item.SeriesTitle()
	}
	if name == "" && item.Kind() != media.KindEpisode {
		name = item.Title
	}
	if year == 0 {
		if season != nil {
			year = season.Year.Int()
		}
		if year == 0 {
			year = item.Year.Int()
		}
	}
	return strings.TrimSpace(name), year
}
