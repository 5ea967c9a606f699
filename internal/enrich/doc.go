// Package enrich resolves the display facets of a notification (title, plot,
// status, image, links, credits, edition) through per-facet fallback chains.
// Every chain starts with the item's own metadata, walks up the ancestor
// records, then queries TMDB and TVDB, and finally settles on a placeholder.
// Provider failures degrade to the next chain link and never abort a run.
package enrich
