package normalization

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		key  string
		want float64
	}{
		{name: "bare_object", raw: `{"a": 1}`, key: "a", want: 1},
		{name: "padded_object", raw: "\n  {\"a\": 1}\t", key: "a", want: 1},
		{name: "prose_wrapped", raw: `noise {"a":1} trailing`, key: "a", want: 1},
		{name: "markdown_fence", raw: "```json\n{\"a\": 2}\n```", key: "a", want: 2},
		{name: "nested_object", raw: `Here you go: {"a": 3, "b": {"c": [1,2]}} hope that helps`, key: "a", want: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.raw)
			if err != nil {
				t.Fatalf("ExtractJSON(%q): %v", tc.raw, err)
			}
			v, ok := got[tc.key].(float64)
			if !ok || v != tc.want {
				t.Fatalf("ExtractJSON(%q)[%q] = %v, want %v", tc.raw, tc.key, got[tc.key], tc.want)
			}
		})
	}
}

func TestExtractJSONNoJSONFound(t *testing.T) {
	cases := []string{
		"not json at all",
		"",
		"only a closing brace } before { an opening one",
		"[1, 2, 3]",
	}
	for _, raw := range cases {
		_, err := ExtractJSON(raw)
		var notFound *NoJSONFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("ExtractJSON(%q): got %v, want NoJSONFoundError", raw, err)
		}
		if notFound.Raw != raw {
			t.Fatalf("NoJSONFoundError did not keep raw text: %q", notFound.Raw)
		}
	}
}

func TestExtractJSONMalformed(t *testing.T) {
	raw := `prefix {"a": oops} suffix`
	_, err := ExtractJSON(raw)
	var malformed *MalformedJSONError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedJSONError", err)
	}
	if malformed.Candidate != `{"a": oops}` {
		t.Fatalf("candidate = %q", malformed.Candidate)
	}
	if malformed.Raw != raw {
		t.Fatalf("raw = %q", malformed.Raw)
	}
}
