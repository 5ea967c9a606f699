package enrich

import (
	"context"
	"strings"

	"plexnote/internal/logging"
)

// editionKeywords are matched against TMDB alternative titles to detect a
// special edition when the library record carries none.
var editionKeywords = []string{
	"extended cut", "director's cut", "special edition", "unrated",
	"ultimate edition", "final cut", "collector's edition", "redux",
	"restored", "anniversary edition", "imax", "3d",
}

// Edition resolves the edition label of a movie: the library's edition field
// first, then a keyword scan over TMDB alternative titles.
func (e *Enricher) Edition(ctx context.Context, s *Subject) string {
	if edition := firstNonEmpty(s.Item.EditionTitle, s.Item.Edition); edition != "" {
		return edition
	}
	if !s.IsMovie() || e.tmdb == nil || s.Identity.TMDBID == "" {
		return ""
	}
	titles, err := e.tmdb.AlternativeTitles(ctx, s.Identity.TMDBID)
	if err != nil {
		e.logger.Warn("tmdb alternative titles lookup failed",
			logging.String("tmdb_id", s.Identity.TMDBID), logging.Error(err))
		return ""
	}
	for _, title := range titles {
		low := strings.ToLower(title)
		for _, kw := range editionKeywords {
			if strings.Contains(low, kw) {
				return slugCaser.String(kw)
			}
		}
	}
	return ""
}
