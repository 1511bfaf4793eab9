// Autoreview is a CLI and HTTP service for automated pull request review.
//
// It fetches a PR's changed files, flags TODO/FIXME markers introduced on
// added diff lines, posts an approve or request-changes review, and can
// merge approved changes automatically.
//
// Usage:
//
//	autoreview pr 123                      # review PR 123 in the detected repo
//	autoreview pr 123 --auto-merge         # merge if the review approves
//	autoreview pr 123 --dry-run            # scan and decide, submit nothing
//	autoreview serve                       # expose the workflow over HTTP
//	autoreview export "Title" --file doc.md  # publish a document
//
// A GitHub token must be supplied via GITHUB_TOKEN (a .env file is read if
// present).
package main
