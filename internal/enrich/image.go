package enrich

import (
	"context"

	"plexnote/internal/logging"
	"plexnote/internal/services/tvdb"
)

// Image resolves the embed image. Order: TMDB backdrop, TMDB poster, TVDB
// fanart, TVDB poster, configured placeholder. The compact style skips
// backdrops because its layout only fits portrait art.
func (e *Enricher) Image(ctx context.Context, s *Subject, posterOnly bool) string {
	if e.tmdb != nil && s.Identity.TMDBID != "" {
		if !posterOnly {
			if url := e.tmdbImage(ctx, s, e.tmdb.BackdropURL); url != "" {
				return url
			}
		}
		if url := e.tmdbImage(ctx, s, e.tmdb.PosterURL); url != "" {
			return url
		}
	}

	if e.tvdb != nil && s.Identity.TVDBSeriesID != "" {
		kinds := []string{tvdb.ArtworkFanart, tvdb.ArtworkPoster}
		if posterOnly {
			kinds = kinds[1:]
		}
		for _, kind := range kinds {
			url, err := e.tvdb.ArtworkURL(ctx, s.Identity.TVDBSeriesID, kind)
			if err != nil {
				e.logger.Warn("tvdb artwork lookup failed",
					logging.String("kind", kind),
					logging.String("tvdb_id", s.Identity.TVDBSeriesID), logging.Error(err))
				continue
			}
			if url != "" {
				return url
			}
		}
	}
	return e.placeholderImage
}

func (e *Enricher) tmdbImage(ctx context.Context, s *Subject, fetch func(context.Context, string, bool) (string, error)) string {
	url, err := fetch(ctx, s.Identity.TMDBID, s.IsMovie())
	if err != nil {
		e.logger.Warn("tmdb image lookup failed",
			logging.String("tmdb_id", s.Identity.TMDBID), logging.Error(err))
		return ""
	}
	return url
}
