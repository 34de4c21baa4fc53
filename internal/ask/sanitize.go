package ask

import "strings"

const (
	fenceOpen  = "```markdown"
	fenceClose = "```"
)

// Sanitize strips a leading ```markdown fence (and the newline after it) and
// a trailing ``` fence from an LLM answer, then trims whitespace. Nested
// wrapping is unwrapped until the text is stable, so Sanitize is idempotent.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := s
		if strings.HasPrefix(next, fenceOpen) {
			next = strings.TrimPrefix(next, fenceOpen)
			next = strings.TrimPrefix(next, "\r")
			next = strings.TrimPrefix(next, "\n")
		}
		next = strings.TrimSpace(strings.TrimSuffix(next, fenceClose))
		if next == s {
			return s
		}
		s = next
	}
}
