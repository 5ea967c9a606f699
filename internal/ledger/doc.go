// Package ledger persists which items have been posted, guaranteeing
// at-most-once delivery across concurrent process invocations. Records live
// in a JSON array on disk; every read-modify-write runs under a cross-process
// exclusive lock. A corrupt file is treated as an empty ledger rather than
// an error.
package ledger
