package enrich

import (
	"context"
	"strings"

	"plexnote/internal/logging"
	"plexnote/internal/media"
	"plexnote/internal/services/tmdb"
)

// People holds the single names shown in the embed.
type People struct {
	Actor    string
	Writer   string
	Producer string
	Director string
}

// Credits resolves the lead actor and the first writer, producer, and
// director. Library metadata wins; gaps are filled from TMDB credits, which
// are fetched at most once per run.
func (e *Enricher) Credits(ctx context.Context, s *Subject) People {
	actors := firstNonEmptyList(s.Item.Actors, ancestorList(s, func(it *media.Item) []string { return it.Actors }))
	writers := firstNonEmptyList(s.Item.Writers, ancestorList(s, func(it *media.Item) []string { return it.Writers }))
	producers := firstNonEmptyList(s.Item.Producers, ancestorList(s, func(it *media.Item) []string { return it.Producers }))
	directors := firstNonEmptyList(s.Item.Directors, ancestorList(s, func(it *media.Item) []string { return it.Directors }))

	var people People
	if kind := s.Item.Kind(); kind == media.KindMovie || kind == media.KindEpisode {
		if len(actors) > 0 {
			people.Actor = actors[0]
		}
	}
	if len(writers) > 0 {
		people.Writer = writers[0]
	}
	if len(producers) > 0 {
		people.Producer = producers[0]
	}
	if len(directors) > 0 {
		people.Director = directors[0]
	}

	if people.Actor != "" && people.Writer != "" && people.Producer != "" && people.Director != "" {
		return people
	}
	credits := e.fetchCredits(ctx, s)
	if credits == nil {
		return people
	}
	if people.Actor == "" && len(credits.Cast) > 0 {
		people.Actor = credits.Cast[0].Name
	}
	if people.Writer == "" {
		people.Writer = crewByJob(credits, "Writer")
	}
	if people.Producer == "" {
		people.Producer = crewByJob(credits, "Producer")
	}
	if people.Director == "" {
		people.Director = crewByJob(credits, "Director")
	}
	return people
}

func (e *Enricher) fetchCredits(ctx context.Context, s *Subject) *tmdb.Credits {
	if e.creditsFetched {
		return e.credits
	}
	e.creditsFetched = true
	if e.tmdb == nil || s.Identity.TMDBID == "" {
		return nil
	}
	credits, err := e.tmdb.Credits(ctx, s.Identity.TMDBID, s.IsMovie())
	if err != nil {
		e.logger.Warn("tmdb credits lookup failed",
			logging.String("tmdb_id", s.Identity.TMDBID), logging.Error(err))
		return nil
	}
	e.credits = credits
	return credits
}

func crewByJob(credits *tmdb.Credits, job string) string {
	for _, member := range credits.Crew {
		if strings.EqualFold(member.Job, job) {
			return member.Name
		}
	}
	return ""
}

func firstNonEmptyList(own []string, ancestor []string) []string {
	if len(own) > 0 {
		return own
	}
	return ancestor
}

func ancestorList(s *Subject, pick func(*media.Item) []string) []string {
	if s.Season != nil {
		if list := pick(s.Season); len(list) > 0 {
			return list
		}
	}
	if s.Series != nil {
		if list := pick(s.Series); len(list) > 0 {
			return list
		}
	}
	return nil
}
