// Package github is the gateway client for the review workflow.
//
// It wraps four GitHub REST operations (fetch PR metadata plus file
// list merged into one snapshot, submit review, submit merge, and submit
// inline comment) behind a Client built from explicit configuration. Non-
// 2xx responses become *APIError values; merge refusals are reported as an
// unmerged MergeResult so callers can tell them apart from transport
// failures. Calls are never retried.
package github
