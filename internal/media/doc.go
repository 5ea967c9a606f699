// Package media models library items as returned by the Tautulli metadata
// API. Tautulli serialises many numeric fields as strings depending on the
// item kind, so the types here decode both representations. The package also
// houses the structural probes that recover codec, resolution, and stream
// language information from arbitrarily nested metadata payloads.
package media
