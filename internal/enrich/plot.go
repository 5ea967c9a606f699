package enrich

import (
	"context"

	"plexnote/internal/logging"
	"plexnote/internal/media"
)

// Plot resolves the plot text: the item's own summary, then ancestor
// summaries, then the kind-specific provider chain. Returns empty when every
// source comes up dry; the placeholder is the composer's concern.
func (e *Enricher) Plot(ctx context.Context, s *Subject) string {
	plot := s.Item.Summary
	if plot == "" && s.Season != nil {
		plot = s.Season.Summary
	}
	if plot == "" && s.Series != nil {
		plot = s.Series.Summary
	}
	if plot != "" {
		return plot
	}

	switch s.Item.Kind() {
	case media.KindMovie:
		return e.tmdbOverview(ctx, s, true)
	case media.KindEpisode:
		if plot := e.tmdbEpisodePlot(ctx, s); plot != "" {
			return plot
		}
		return e.tvdbText(ctx, s.Identity.TVDBEpisodeID, "episode", e.episodeOverview)
	case media.KindSeason:
		if plot := e.tmdbOverview(ctx, s, false); plot != "" {
			return plot
		}
		return e.tvdbText(ctx, s.Identity.TVDBSeasonID, "season", e.seasonOverview)
	default:
		if plot := e.tmdbOverview(ctx, s, false); plot != "" {
			return plot
		}
		return e.tvdbText(ctx, s.Identity.TVDBSeriesID, "series", e.seriesOverview)
	}
}

func (e *Enricher) tmdbOverview(ctx context.Context, s *Subject, isMovie bool) string {
	if e.tmdb == nil || s.Identity.TMDBID == "" {
		return ""
	}
	details, err := e.tmdb.Details(ctx, s.Identity.TMDBID, isMovie, e.language)
	if err != nil {
		e.logger.Warn("tmdb overview lookup failed",
			logging.String("tmdb_id", s.Identity.TMDBID), logging.Error(err))
		return ""
	}
	return details.Overview
}

// tmdbEpisodePlot tries the preferred language first, then the fallback.
func (e *Enricher) tmdbEpisodePlot(ctx context.Context, s *Subject) string {
	if e.tmdb == nil || s.Identity.TMDBID == "" {
		return ""
	}
	season := s.Item.SeasonNumber()
	episode := s.Item.EpisodeNumber()
	for _, lang := range []string{e.language, e.fallbackLanguage} {
		ep, err := e.tmdb.EpisodeDetails(ctx, s.Identity.TMDBID, season, episode, lang)
		if err != nil {
			e.logger.Warn("tmdb episode plot lookup failed",
				logging.String("tmdb_id", s.Identity.TMDBID),
				logging.String("language", lang), logging.Error(err))
			continue
		}
		if ep.Overview != "" {
			return ep.Overview
		}
	}
	return ""
}

func (e *Enricher) episodeOverview(ctx context.Context, id string) (string, error) {
	return e.tvdb.EpisodeOverview(ctx, id)
}

func (e *Enricher) seasonOverview(ctx context.Context, id string) (string, error) {
	return e.tvdb.SeasonOverview(ctx, id)
}

func (e *Enricher) seriesOverview(ctx context.Context, id string) (string, error) {
	return e.tvdb.SeriesOverview(ctx, id)
}

func (e *Enricher) tvdbText(ctx context.Context, id, entity string, fetch func(context.Context, string) (string, error)) string {
	if e.tvdb == nil || id == "" {
		return ""
	}
	text, err := fetch(ctx, id)
	if err != nil {
		e.logger.Warn("tvdb plot lookup failed",
			logging.String("entity", entity), logging.String("tvdb_id", id), logging.Error(err))
		return ""
	}
	return text
}
