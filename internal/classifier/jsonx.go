package classifier

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no JSON object found in model output")

// extractJSONObject pulls a JSON object out of free-text model output.
// Three attempts, in order: direct parse, parse after stripping
// markdown code fences, and a scan for the first balanced {...} block.
func extractJSONObject(content string) (map[string]any, error) {
	content = strings.TrimSpace(content)

	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		return obj, nil
	}

	if stripped := stripCodeFences(content); stripped != content {
		if err := json.Unmarshal([]byte(stripped), &obj); err == nil {
			return obj, nil
		}
	}

	if block := firstBalancedObject(content); block != "" {
		if err := json.Unmarshal([]byte(block), &obj); err == nil {
			return obj, nil
		}
	}

	return nil, errNoJSONObject
}

// stripCodeFences removes a surrounding ``` or ```json fence.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the language hint on the opening fence line.
		if lang := strings.TrimSpace(s[:i]); lang == "" || !strings.ContainsAny(lang, "{}") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// firstBalancedObject returns the first {...} block with balanced
// braces, tracked with an explicit depth counter that ignores braces
// inside string literals.
func firstBalancedObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

// resultFromObject builds a Result from a decoded model object,
// tolerating missing fields and numeric confidence encodings.
func resultFromObject(obj map[string]any) Result {
	res := Result{
		Classification: CategoryMiscellaneous,
		Confidence:     60,
	}

	if v, ok := obj["classification"].(string); ok && v != "" {
		res.Classification = v
	}
	switch v := obj["confidence"].(type) {
	case float64:
		res.Confidence = int(v)
	case string:
		var n json.Number = json.Number(v)
		if f, err := n.Float64(); err == nil {
			res.Confidence = int(f)
		}
	}
	if v, ok := obj["reasoning"].(string); ok {
		res.Reasoning = v
	}

	res.Classification = NormalizeCategory(res.Classification)
	return res
}
