// Package export publishes text documents (typically review write-ups) to
// an external document store. Two sinks ship: a directory-backed store and
// an HTTP endpoint. The export side-channel is independent of the review
// workflow.
package export
