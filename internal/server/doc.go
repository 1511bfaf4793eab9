// Package server exposes the review workflow and the document export sink
// as an HTTP API: POST /api/v1/review, POST /api/v1/export, GET /healthz.
// A per-run failure is a structured error payload, never a process exit.
package server
