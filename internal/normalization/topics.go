package normalization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// MaxTopics caps how many topics survive normalization. The model is asked for
// ten; anything past that is truncated, not rejected.
const MaxTopics = 10

const defaultScore = 1

type TopicScore struct {
	Name  string
	Score int
}

// TopicScores is an ordered topic→score mapping. Order is meaningful (it is
// the order the coercion step produced), so it marshals as a JSON object with
// keys in slice order rather than going through a Go map.
type TopicScores []TopicScore

func (ts TopicScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range ts {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(t.Score))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the score for name and whether it is present.
func (ts TopicScores) Get(name string) (int, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t.Score, true
		}
	}
	return 0, false
}

// NormalizeTopics coerces a decoded JSON value into an ordered topic→score
// mapping. Two shapes are accepted: an object whose values are numeric or
// numeric-string scores, and an array of strings of the form
// "<topic words> <integer>" (a bare topic string gets the default score).
// Anything else fails with InvalidShapeError. An empty outcome fails with
// ErrEmptyResult.
//
// Go maps are unordered, so object input is walked in sorted-key order to keep
// the result deterministic. Array input keeps its element order. The result is
// truncated to MaxTopics entries.
func NormalizeTopics(v any) (TopicScores, error) {
	var out TopicScores

	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			name := strings.TrimSpace(k)
			if name == "" {
				continue
			}
			out = append(out, TopicScore{Name: name, Score: coerceScore(val[k])})
		}
	case []any:
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				continue
			}
			entry, ok := parseTopicLine(s)
			if !ok {
				continue
			}
			out = append(out, entry)
		}
	default:
		return nil, &InvalidShapeError{Got: fmt.Sprintf("%T", v)}
	}

	if len(out) > MaxTopics {
		out = out[:MaxTopics]
	}
	if len(out) == 0 {
		return nil, ErrEmptyResult
	}
	return out, nil
}

// coerceScore turns an arbitrary JSON value into an integer score. Integral
// numbers are used as-is; everything else is parsed from its string form, and
// on failure the default score applies.
func coerceScore(v any) int {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	if i, err := strconv.Atoi(strings.TrimSpace(fmt.Sprintf("%v", v))); err == nil {
		return i
	}
	return defaultScore
}

// parseTopicLine splits a free-text entry like "two pointers 7" into a topic
// name and trailing integer score. Without a trailing integer the whole
// trimmed string is the topic at the default score.
func parseTopicLine(s string) (TopicScore, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TopicScore{}, false
	}
	tokens := strings.Fields(trimmed)
	last := tokens[len(tokens)-1]
	if isDigits(last) {
		name := strings.TrimSpace(strings.Join(tokens[:len(tokens)-1], " "))
		if name == "" {
			return TopicScore{}, false
		}
		score, err := strconv.Atoi(last)
		if err != nil {
			return TopicScore{Name: trimmed, Score: defaultScore}, true
		}
		return TopicScore{Name: name, Score: score}, true
	}
	return TopicScore{Name: trimmed, Score: defaultScore}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
