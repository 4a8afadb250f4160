// Package main hosts the reelcheck CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into feature
// extraction, scoring, and validation runs, plus report-history lookups
// and configuration scaffolding. It centralizes configuration resolution
// and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags
// here.
package main
