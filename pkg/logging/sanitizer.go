package logging

import (
	"regexp"
)

const (
	// MaxStoredErrorLength caps error text persisted to the sync_log table.
	MaxStoredErrorLength = 500
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match potential passwords in connection strings
	// Matches: password=xxx, pwd=xxx, pass=xxx (until next delimiter)
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Pattern to match bearer tokens leaked into request errors
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_.]+`)

	// Pattern to match the source API access key header value
	accessKeyPattern = regexp.MustCompile(`(?i)(accesskey|access[_-]key)[:=]\s*[A-Za-z0-9-_]+`)

	// Pattern to match connection string credentials (user:pass@host format)
	connStringPattern = regexp.MustCompile(`://[^:]+:[^@]+@[^/\s]+`)
)

// SanitizeError sanitizes error messages before they are logged or persisted
// to the sync_log table. Driver and HTTP client errors can embed connection
// strings and request headers verbatim.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}

// Sanitize removes credential material from a string.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}

	sanitized := passwordPattern.ReplaceAllString(s, "${1}="+RedactedText)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
	sanitized = accessKeyPattern.ReplaceAllString(sanitized, "${1}: "+RedactedText)
	sanitized = connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)

	return sanitized
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
