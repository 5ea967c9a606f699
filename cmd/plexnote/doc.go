// Package main hosts the plexnote CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the notification run itself, ledger
// maintenance, configuration scaffolding, and a webhook smoke test. It
// centralizes configuration resolution and logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
