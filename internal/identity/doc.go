// Package identity resolves provider IDs (TMDB, TVDB, IMDB) for a library
// item from its guid strings. Guids are scanned item first, then season,
// then series; the first occurrence of a namespace wins. Missing TMDB IDs
// are cross-resolved through the TVDB external-ID lookup and finally by
// name search. Lookup failures degrade to absent IDs and never abort a run.
package identity
