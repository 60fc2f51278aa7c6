package mcp

// Truncate shortens s to at most max runes, appending "..." when
// anything was cut. Used for payload excerpts in logs and errors.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
