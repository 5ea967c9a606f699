// Package pipeline drives one notification run: admission through the dedup
// ledger, metadata and ancestor fetches, identity resolution, facet
// enrichment, embed composition, and webhook delivery with a final ledger
// status update.
package pipeline
