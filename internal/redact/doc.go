// Package redact strips likely credentials from text before it is
// published to the document export sink. It is never applied to review
// findings, whose line content must stay verbatim.
package redact
