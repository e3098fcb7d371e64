package normalization

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers a single JSON object from raw model text. The text is
// parsed directly first; when that fails, the span from the first "{" to the
// last "}" is taken as the candidate object. This assumes the model emits at
// most one top-level object, possibly wrapped in prose. Unbalanced braces
// inside string values can defeat the scan; that is a known limitation of the
// heuristic, not something we try to repair.
func ExtractJSON(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)

	var direct map[string]any
	if err := json.Unmarshal([]byte(trimmed), &direct); err == nil {
		return direct, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < 0 || end <= start {
		return nil, &NoJSONFoundError{Raw: raw}
	}

	candidate := raw[start : end+1]
	var out map[string]any
	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		return nil, &MalformedJSONError{Candidate: candidate, Raw: raw, Err: err}
	}
	return out, nil
}
