package enrich

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"plexnote/internal/logging"
	"plexnote/internal/media"
	"plexnote/internal/textutil"
)

var slugCaser = cases.Title(language.Und)

// Title resolves the item's display title. Episodes walk a candidate chain
// (own title, TMDB episode name, TVDB episode title) until one passes the
// usability predicate; the cleaned own title remains the last resort.
func (e *Enricher) Title(ctx context.Context, s *Subject) string {
	clean := textutil.StripYearCodes(s.Item.Title)
	if s.Item.Kind() != media.KindEpisode || textutil.IsUsableTitle(clean) {
		return clean
	}

	candidates := []string{clean}
	tmdbTitle := e.tmdbEpisodeName(ctx, s)
	if tmdbTitle != "" {
		candidates = append(candidates, tmdbTitle)
	}
	if tmdbTitle == "" || !textutil.IsUsableTitle(tmdbTitle) {
		if tvdbTitle := e.tvdbEpisodeName(ctx, s); tvdbTitle != "" {
			candidates = append(candidates, tvdbTitle)
		}
	}
	for _, cand := range candidates {
		if textutil.IsUsableTitle(cand) {
			return cand
		}
	}
	return clean
}

func (e *Enricher) tmdbEpisodeName(ctx context.Context, s *Subject) string {
	if e.tmdb == nil || s.Identity.TMDBID == "" {
		return ""
	}
	season := s.Item.SeasonNumber()
	episode := s.Item.EpisodeNumber()
	ep, err := e.tmdb.EpisodeDetails(ctx, s.Identity.TMDBID, season, episode, e.language)
	if err != nil {
		e.logger.Warn("tmdb episode title lookup failed",
			logging.String("tmdb_id", s.Identity.TMDBID), logging.Error(err))
		return ""
	}
	return ep.Name
}

func (e *Enricher) tvdbEpisodeName(ctx context.Context, s *Subject) string {
	if e.tvdb == nil || s.Identity.TVDBEpisodeID == "" {
		return ""
	}
	title, err := e.tvdb.EpisodeTitle(ctx, s.Identity.TVDBEpisodeID)
	if err != nil {
		e.logger.Warn("tvdb episode title lookup failed",
			logging.String("tvdb_episode_id", s.Identity.TVDBEpisodeID), logging.Error(err))
		return ""
	}
	return title
}

// SeriesName resolves the series name shown in the "Aus:" subtitle. For
// seasons without a series title, the parent slug is de-slugged and
// title-cased as a fallback.
func (e *Enricher) SeriesName(s *Subject) string {
	if name := s.Item.GrandparentTitle; name != "" {
		return name
	}
	if s.Item.Kind() == media.KindSeason {
		if name := s.Item.ParentTitle; name != "" {
			return name
		}
		if slug := strings.TrimSpace(s.Item.ParentSlug); slug != "" {
			return slugCaser.String(strings.ReplaceAll(slug, "-", " "))
		}
	}
	return ""
}
