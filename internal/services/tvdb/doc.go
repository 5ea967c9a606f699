// Package tvdb provides a client for the TVDB v4 API. Authentication tokens
// are cached per process and refreshed before their validity window expires.
// Text lookups follow a translation chain (preferred language, fallback
// language, untranslated base record).
package tvdb
