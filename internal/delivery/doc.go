// Package delivery posts composed embeds to the Discord webhook. Delivery
// retries a fixed number of times with a linearly growing backoff; rate-limit
// responses honour the server's Retry-After interval and do not consume an
// attempt.
package delivery
