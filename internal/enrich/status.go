package enrich

import (
	"context"

	"plexnote/internal/logging"
	"plexnote/internal/media"
)

// statusTranslations maps TMDB production status values to the German labels
// shown in the embed.
var statusTranslations = map[string]string{
	"Returning Series": "Laufend",
	"Ended":            "Beendet",
	"Canceled":         "Abgesetzt",
	"In Production":    "In Produktion",
	"Planned":          "Geplant",
	"Pilot":            "Pilotfolge",
}

// Status resolves the translated series status. Movies have none; unknown
// provider values are dropped rather than shown untranslated.
func (e *Enricher) Status(ctx context.Context, s *Subject) string {
	if s.Item.Kind() == media.KindMovie {
		return ""
	}
	if e.tmdb == nil || s.Identity.TMDBID == "" {
		return ""
	}
	details, err := e.tmdb.Details(ctx, s.Identity.TMDBID, false, e.language)
	if err != nil {
		e.logger.Warn("tmdb status lookup failed",
			logging.String("tmdb_id", s.Identity.TMDBID), logging.Error(err))
		return ""
	}
	return statusTranslations[details.Status]
}
