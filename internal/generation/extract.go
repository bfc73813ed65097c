package generation

import (
	"strings"
)

// rawSentinels mark the start of an unfenced HTML document in LLM output.
var rawSentinels = []string{"<!DOCTYPE", "<html"}

// ExtractHTML pulls the HTML document out of free-form LLM response text.
// It looks for a ```html fence first, then any ``` fence, then falls back
// to locating a raw markup-start sentinel. Returns ErrNoCode when no code
// region can be located.
func ExtractHTML(content string) (string, error) {
	if code, ok := extractFenced(content, "```html"); ok {
		return code, nil
	}
	if code, ok := extractFenced(content, "```"); ok {
		return code, nil
	}

	for _, sentinel := range rawSentinels {
		if idx := strings.Index(content, sentinel); idx >= 0 {
			return strings.TrimSpace(content[idx:]), nil
		}
	}

	return "", ErrNoCode
}

// extractFenced returns the content between an opening fence marker and the
// next closing ``` fence. An unterminated fence takes everything after the
// marker; models frequently drop the closing fence when truncated.
func extractFenced(content, marker string) (string, bool) {
	start := strings.Index(content, marker)
	if start < 0 {
		return "", false
	}
	rest := content[start+len(marker):]

	// Skip a language tag or stray text on the fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && marker == "```" {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine != "" && !strings.HasPrefix(firstLine, "<") {
			rest = rest[nl+1:]
		}
	}

	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}

	code := strings.TrimSpace(rest)
	if code == "" {
		return "", false
	}
	return code, true
}
