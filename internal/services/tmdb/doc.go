// Package tmdb provides a client for the TMDB v3 API covering the lookups
// the notification pipeline needs: details, episode and season records,
// images, credits, videos, alternative titles, text search, and resolution
// of external TVDB IDs.
package tmdb
