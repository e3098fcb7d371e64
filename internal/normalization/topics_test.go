package normalization

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeTopicsSequence(t *testing.T) {
	in := []any{"arrays 10", "two pointers 7", "graphs"}
	got, err := NormalizeTopics(in)
	if err != nil {
		t.Fatalf("NormalizeTopics returned error: %v", err)
	}
	want := TopicScores{
		{Name: "arrays", Score: 10},
		{Name: "two pointers", Score: 7},
		{Name: "graphs", Score: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNormalizeTopicsSequenceSkipsJunk(t *testing.T) {
	in := []any{"", "   ", 42.0, "42", "hashing 3"}
	got, err := NormalizeTopics(in)
	if err != nil {
		t.Fatalf("NormalizeTopics returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "hashing" || got[0].Score != 3 {
		t.Fatalf("got %v, want only {hashing 3}", got)
	}
}

func TestNormalizeTopicsMapping(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  int
	}{
		{name: "integral_float", value: 7.0, want: 7},
		{name: "numeric_string", value: "4", want: 4},
		{name: "padded_numeric_string", value: " 9 ", want: 9},
		{name: "fractional_number", value: 7.5, want: 1},
		{name: "word_string", value: "high", want: 1},
		{name: "bool", value: true, want: 1},
		{name: "nil", value: nil, want: 1},
		{name: "nested_object", value: map[string]any{"importance": 7.0}, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeTopics(map[string]any{"topic": tc.value})
			if err != nil {
				t.Fatalf("NormalizeTopics returned error: %v", err)
			}
			score, ok := got.Get("topic")
			if !ok {
				t.Fatalf("topic missing from %v", got)
			}
			if score != tc.want {
				t.Fatalf("score=%d, want %d", score, tc.want)
			}
		})
	}
}

func TestNormalizeTopicsMappingSkipsEmptyKeys(t *testing.T) {
	got, err := NormalizeTopics(map[string]any{"  ": 5.0, "arrays": 2.0})
	if err != nil {
		t.Fatalf("NormalizeTopics returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "arrays" {
		t.Fatalf("got %v, want only arrays", got)
	}
}

func TestNormalizeTopicsTruncation(t *testing.T) {
	var in []any
	for i := 0; i < 25; i++ {
		in = append(in, fmt.Sprintf("topic%02d %d", i, i))
	}
	got, err := NormalizeTopics(in)
	if err != nil {
		t.Fatalf("NormalizeTopics returned error: %v", err)
	}
	if len(got) != MaxTopics {
		t.Fatalf("got %d entries, want %d", len(got), MaxTopics)
	}
	for i, entry := range got {
		wantName := fmt.Sprintf("topic%02d", i)
		if entry.Name != wantName {
			t.Fatalf("truncation reordered entries: index %d is %q, want %q", i, entry.Name, wantName)
		}
	}
}

func TestNormalizeTopicsInvalidShape(t *testing.T) {
	for _, in := range []any{"just a string", 12.0, true, nil} {
		_, err := NormalizeTopics(in)
		var shapeErr *InvalidShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("NormalizeTopics(%v): got %v, want InvalidShapeError", in, err)
		}
	}
}

func TestNormalizeTopicsEmptyResult(t *testing.T) {
	for _, in := range []any{map[string]any{}, []any{}, []any{"", "  "}, map[string]any{" ": 1.0}} {
		_, err := NormalizeTopics(in)
		if !errors.Is(err, ErrEmptyResult) {
			t.Fatalf("NormalizeTopics(%v): got %v, want ErrEmptyResult", in, err)
		}
	}
}

func TestTopicScoresMarshalOrder(t *testing.T) {
	ts := TopicScores{
		{Name: "arrays", Score: 10},
		{Name: "two pointers", Score: 7},
		{Name: "graphs", Score: 1},
	}
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"arrays":10,"two pointers":7,"graphs":1}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}
