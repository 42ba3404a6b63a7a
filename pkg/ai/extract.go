package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrMalformedOutput indicates the model reply contained no parseable JSON
// object, neither as-is nor after fence stripping and brace extraction.
var ErrMalformedOutput = errors.New("model did not return valid JSON")

// StripCodeFences removes a markdown ```json ... ``` (or bare ```) wrapper if
// present. Text without a leading fence is returned trimmed and unchanged, so
// the operation is idempotent.
func StripCodeFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}

	parts := strings.SplitN(t, "```", 3)
	if len(parts) == 3 {
		body := parts[1]
		if lower := strings.ToLower(body); strings.HasPrefix(lower, "json") {
			if _, rest, found := strings.Cut(body, "\n"); found {
				return strings.TrimSpace(rest)
			}
			// One-line fence: the tag abuts the object, drop only the tag.
			return strings.TrimSpace(body[len("json"):])
		}
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(parts[len(parts)-1])
}

// ExtractFirstJSONObject returns the first balanced top-level {...} substring,
// tracking quoted strings and backslash escapes so braces inside string
// literals do not affect the depth count. The second return value is false
// when no complete object exists.
func ExtractFirstJSONObject(s string) (string, bool) {
	depth := 0
	start := -1
	inString := false
	escape := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// ParseModelJSON turns a raw model reply into a loosely-typed object. It
// attempts a strict parse of the fence-stripped text first and falls back to
// brace extraction for replies that wrap the object in prose. Failure of both
// attempts is fatal for the current evaluation request.
func ParseModelJSON(text string) (map[string]any, error) {
	t := StripCodeFences(text)

	var result map[string]any
	if err := json.Unmarshal([]byte(t), &result); err == nil {
		return result, nil
	}

	block, ok := ExtractFirstJSONObject(t)
	if !ok {
		return nil, ErrMalformedOutput
	}
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return nil, ErrMalformedOutput
	}
	return result, nil
}
