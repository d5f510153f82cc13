package logger

import (
	"regexp"
	"strings"
)

const redactedPlaceholder = "[REDACTED]"

// Patterns that capture a sensitive label followed by its value. Only the
// value is replaced; the label survives so log lines stay searchable.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password|passwd|pwd)[\s:=]+[^\s]+`),
	regexp.MustCompile(`(?i)(token|jwt|bearer)[\s:=]+[^\s]+`),
	regexp.MustCompile(`(?i)(secret|private[_-]?key)[\s:=]+[^\s]+`),
}

// Substrings that mark a map key as sensitive.
var sensitiveKeyParts = []string{
	"password", "passwd", "pwd",
	"token", "jwt", "bearer",
	"secret", "private_key", "private-key",
}

// SanitizeLogMessage redacts credential material from a log line before it
// reaches any sink.
func SanitizeLogMessage(message string) string {
	for _, p := range sensitivePatterns {
		message = p.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	}
	return message
}

// SanitizeMap returns a copy of data with sensitive values redacted. Used for
// audit event metadata, which is persisted as JSONB.
func SanitizeMap(data map[string]any) map[string]any {
	sanitized := make(map[string]any, len(data))
	for k, v := range data {
		if isSensitiveKey(k) {
			sanitized[k] = redactedPlaceholder
			continue
		}
		if s, ok := v.(string); ok {
			sanitized[k] = SanitizeLogMessage(s)
			continue
		}
		sanitized[k] = v
	}
	return sanitized
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
