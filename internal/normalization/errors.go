package normalization

import (
	"errors"
	"fmt"
)

// ErrEmptyResult means coercion succeeded but yielded nothing usable.
// Callers decide whether that is fatal.
var ErrEmptyResult = errors.New("normalization produced no topics")

// InvalidShapeError is returned when the model (or a caller) hands us a JSON
// value that is neither a mapping nor a sequence.
type InvalidShapeError struct {
	Got string
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("unexpected topic payload shape: %s", e.Got)
}

// NoJSONFoundError means the raw model text contains no candidate JSON object.
// Raw is kept for diagnostics and must not leak into client responses.
type NoJSONFoundError struct {
	Raw string
}

func (e *NoJSONFoundError) Error() string {
	return "no JSON object found in model output"
}

// MalformedJSONError means a candidate object was located but did not parse.
type MalformedJSONError struct {
	Candidate string
	Raw       string
	Err       error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("model output contained malformed JSON: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}
