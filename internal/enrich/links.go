package enrich

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"plexnote/internal/logging"
	"plexnote/internal/media"
)

// Link is one outbound link of the details block.
type Link struct {
	Label string
	URL   string
}

// Links assembles the outbound links: the verified provider deep link, the
// Plex deep link, and a trailer when one exists.
func (e *Enricher) Links(ctx context.Context, s *Subject) []Link {
	links := []Link{e.deepLink(ctx, s)}
	if plex := e.plexLink(s); plex.URL != "" {
		links = append(links, plex)
	}
	if trailer := e.trailerLink(ctx, s); trailer.URL != "" {
		links = append(links, trailer)
	}
	return links
}

// deepLink builds the primary provider link. TMDB season and episode pages
// are probed before they are linked; a missing page falls back to IMDB, then
// to a TVDB link, then to the provider homepage.
func (e *Enricher) deepLink(ctx context.Context, s *Subject) Link {
	if url := e.tmdbDeepLink(ctx, s); url != "" {
		return Link{Label: "TMDB", URL: url}
	}
	if s.Identity.IMDBID != "" {
		return Link{Label: "IMDB", URL: "https://www.imdb.com/title/tt" + s.Identity.IMDBID}
	}
	if url := tvdbLink(s); url != "" {
		return Link{Label: "TVDB", URL: url}
	}
	return Link{Label: "TMDB", URL: "https://www.themoviedb.org"}
}

func (e *Enricher) tmdbDeepLink(ctx context.Context, s *Subject) string {
	tmdbID := s.Identity.TMDBID
	if tmdbID == "" {
		return ""
	}
	lang := url.QueryEscape(e.language)
	switch s.Item.Kind() {
	case media.KindMovie:
		return fmt.Sprintf("https://www.themoviedb.org/movie/%s?language=%s", tmdbID, lang)
	case media.KindSeason:
		season := s.Item.SeasonNumber()
		if e.tmdb == nil || !e.tmdb.SeasonExists(ctx, tmdbID, season) {
			return ""
		}
		return fmt.Sprintf("https://www.themoviedb.org/tv/%s/season/%d?language=%s", tmdbID, season, lang)
	case media.KindEpisode:
		season := s.Item.SeasonNumber()
		episode := s.Item.EpisodeNumber()
		if e.tmdb == nil || !e.tmdb.EpisodeExists(ctx, tmdbID, season, episode) {
			return ""
		}
		return fmt.Sprintf("https://www.themoviedb.org/tv/%s/season/%d/episode/%d?language=%s", tmdbID, season, episode, lang)
	default:
		return fmt.Sprintf("https://www.themoviedb.org/tv/%s?language=%s", tmdbID, lang)
	}
}

// tvdbLink builds a TVDB page link from the series slug when available,
// falling back to ID-based URLs.
func tvdbLink(s *Subject) string {
	slug := firstNonEmpty(s.Item.Slug, s.Item.ParentSlug, s.Item.GrandparentSlug)
	if slug == "" && s.Series != nil {
		slug = firstNonEmpty(s.Series.Slug, s.Series.OriginalTitle)
	}
	if slug == "" {
		slug = s.Item.OriginalTitle
	}
	if slug != "" {
		slug = strings.ToLower(strings.NewReplacer(" ", "-", "_", "-").Replace(slug))
	}

	switch s.Item.Kind() {
	case media.KindEpisode:
		if s.Identity.TVDBEpisodeID == "" {
			break
		}
		if slug != "" {
			return fmt.Sprintf("https://thetvdb.com/series/%s/episodes/%s", slug, s.Identity.TVDBEpisodeID)
		}
		return "https://thetvdb.com/episode/" + s.Identity.TVDBEpisodeID
	case media.KindSeason:
		if slug != "" && s.Item.SeasonNumber() > 0 {
			return fmt.Sprintf("https://thetvdb.com/series/%s/seasons/official/%d", slug, s.Item.SeasonNumber())
		}
	case media.KindShow:
		if slug != "" {
			return "https://thetvdb.com/series/" + slug
		}
	}
	if s.Identity.TVDBSeriesID != "" {
		return "https://thetvdb.com/series/" + s.Identity.TVDBSeriesID
	}
	return ""
}

// plexLink builds the Plex web app deep link for the item.
func (e *Enricher) plexLink(s *Subject) Link {
	if e.plexBaseURL == "" || e.plexServerID == "" {
		return Link{}
	}
	key := url.QueryEscape("/library/metadata/" + s.Item.RatingKey.String())
	return Link{
		Label: "PLEX",
		URL:   fmt.Sprintf("%s/desktop/#!/server/%s/details?key=%s", e.plexBaseURL, e.plexServerID, key),
	}
}

// trailerLink finds a YouTube trailer, preferring German, then English, then
// any language, and finally falls back to a Plex part-key trailer.
func (e *Enricher) trailerLink(ctx context.Context, s *Subject) Link {
	if e.tmdb != nil && s.Identity.TMDBID != "" {
		videos, err := e.tmdb.Videos(ctx, s.Identity.TMDBID, s.IsMovie())
		if err != nil {
			e.logger.Warn("tmdb videos lookup failed",
				logging.String("tmdb_id", s.Identity.TMDBID), logging.Error(err))
		}
		for _, pref := range []string{"de", "en", ""} {
			for _, v := range videos {
				if !strings.EqualFold(v.Site, "youtube") || !strings.EqualFold(v.Type, "trailer") {
					continue
				}
				if pref == "" || strings.EqualFold(v.Language, pref) {
					return Link{Label: "Trailer", URL: "https://www.youtube.com/watch?v=" + v.Key}
				}
			}
		}
	}
	if key := plexPartKey(s.Item); key != "" && e.plexBaseURL != "" {
		return Link{Label: "Plex Trailer", URL: e.plexBaseURL + key}
	}
	return Link{}
}

// plexPartKey digs the first part key out of the raw metadata tree. The
// capitalised Media/Part shape only appears in raw Plex payloads, so the
// typed model does not cover it.
func plexPartKey(item *media.Item) string {
	mediaList, ok := item.Raw["Media"].([]any)
	if !ok || len(mediaList) == 0 {
		return ""
	}
	first, ok := mediaList[0].(map[string]any)
	if !ok {
		return ""
	}
	parts, ok := first["Part"].([]any)
	if !ok || len(parts) == 0 {
		return ""
	}
	part, ok := parts[0].(map[string]any)
	if !ok {
		return ""
	}
	key, _ := part["key"].(string)
	return key
}
