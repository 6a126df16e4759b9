package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedJSONRegex = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAnyRegex  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	jsonStringRegex = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)
)

// ExtractJSON pulls a JSON payload out of a model response. Models wrap
// their output in markdown fences more often than not, so extraction tries,
// in order: a fenced block labeled json, any fenced block, a balanced
// brace-delimited substring, and finally the raw text.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	if m := fencedJSONRegex.FindStringSubmatch(text); len(m) > 1 {
		return SanitizeJSON(strings.TrimSpace(m[1]))
	}

	if m := fencedAnyRegex.FindStringSubmatch(text); len(m) > 1 {
		return SanitizeJSON(strings.TrimSpace(m[1]))
	}

	if block := braceDelimited(text); block != "" {
		return SanitizeJSON(block)
	}

	return SanitizeJSON(text)
}

// braceDelimited returns the largest balanced {...} substring that is valid
// JSON, respecting string literals and escapes.
func braceDelimited(text string) string {
	var best string
	for i := 0; i < len(text); {
		start := strings.IndexByte(text[i:], '{')
		if start == -1 {
			break
		}
		start += i

		depth := 0
		inString := false
		escaped := false
		end := -1

		for j := start; j < len(text); j++ {
			c := text[j]
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				inString = !inString
				continue
			}
			if inString {
				continue
			}
			if c == '{' {
				depth++
			} else if c == '}' {
				depth--
				if depth == 0 {
					end = j
					break
				}
			}
		}

		if end == -1 {
			i = start + 1
			continue
		}

		block := SanitizeJSON(text[start : end+1])
		if json.Valid([]byte(block)) && len(block) > len(best) {
			best = block
		}
		i = end + 1
	}
	return best
}

// SanitizeJSON cleans malformed JSON that LLMs sometimes generate, such as
// unescaped newlines within string literals.
func SanitizeJSON(s string) string {
	return jsonStringRegex.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, "\n", "\\n")
	})
}
