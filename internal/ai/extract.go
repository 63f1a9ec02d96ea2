package ai

import "encoding/json"

// Extraction is the best-effort result of pulling a JSON object out of
// free-form model output: either a structured object or the raw text,
// never an error.
type Extraction struct {
	Structured map[string]any
	Raw        string
}

// ExtractJSON locates the first brace-delimited JSON object inside text
// and parses it. On failure the raw text comes back untouched. No schema
// validation is applied to the extracted object.
func ExtractJSON(text string) Extraction {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		end := matchBrace(text, start)
		if end < 0 {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err == nil {
			return Extraction{Structured: obj, Raw: text}
		}
	}
	return Extraction{Raw: text}
}

// matchBrace returns the index of the brace closing text[start], or -1.
// Braces inside JSON strings are skipped.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
