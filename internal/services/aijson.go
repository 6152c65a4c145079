package services

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractJSONObject salvages a JSON object from raw advisor output. Models
// wrap bodies in code fences, prepend prose, or slip in stray escapes; each
// strategy is tried in turn and the first candidate that validates wins.
// Returns ok=false only when every strategy fails — the caller decides whether
// that escalates.
func ExtractJSONObject(raw string) (string, bool) {
	candidates := []string{
		strings.TrimSpace(raw),
		stripCodeFences(raw),
		extractBraces(raw),
		fixEscapes(extractBraces(raw)),
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if gjson.Valid(candidate) && strings.HasPrefix(candidate, "{") {
			return candidate, true
		}
	}
	return "", false
}

func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractBraces cuts from the first '{' to its matching close brace, tracking
// string literals so braces inside values do not confuse the scan.
func extractBraces(raw string) string {
	start := strings.Index(raw, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1]
				}
			}
		}
	}
	return ""
}

// fixEscapes repairs the common single-backslash slip (e.g. "\d" emitted
// inside a string) by doubling backslashes that do not begin a valid JSON
// escape sequence.
func fixEscapes(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		if i+1 < len(raw) {
			switch raw[i+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				b.WriteByte(ch)
				continue
			}
		}
		b.WriteString(`\\`)
	}
	return b.String()
}
