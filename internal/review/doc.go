// Package review contains the core types and workflow for automated pull
// request review.
//
// It defines the PullRequest snapshot, Finding, Decision, and Result types,
// the diff Scanner that flags TODO/FIXME markers on added lines, the
// decision policy that turns findings into an approve or request-changes
// verdict with a deterministic review body, and the Orchestrator that runs
// fetch, scan, decide, submit, and conditional merge against a Gateway.
//
// The Scanner interface is the seam for stronger analyzers; the shipped
// MarkerScanner is a literal, case-sensitive substring check.
package review
