// Package embedmsg composes Discord embed payloads from resolved facets.
// Composition is pure: all provider lookups happen before, in the enrich
// package, so every layout decision here is deterministic and testable.
// Three styles are supported: boxed (bracketed media-info block), compact
// (description-only, poster image), and classic (inline fields).
package embedmsg
