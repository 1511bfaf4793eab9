package redact

import "regexp"

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for credentials that commonly leak
// into review write-ups copied out of diffs.
var secretPatterns = []*regexp.Regexp{
	// Assigned API keys, secrets, tokens, passwords
	regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|credential)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{8,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}
