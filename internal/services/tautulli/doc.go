// Package tautulli provides a minimal client for the Tautulli v2 API. The
// pipeline uses it to fetch item metadata (optionally with children) and to
// discover the most recently added library item.
package tautulli
