// Package cli wires together the Cobra command tree for the autoreview
// binary.
//
// It defines the root command and all subcommands (pr, serve, export,
// config, version), binds flags, reads configuration, invokes the review
// orchestrator, and returns deterministic exit codes for CI gating.
package cli
