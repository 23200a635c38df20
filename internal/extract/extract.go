// Package extract recovers a JSON payload from free-form model output.
//
// The fast path slices from the first opening delimiter to the last closing
// delimiter of the requested shape. When that slice does not parse, even
// after repair, a balanced-delimiter scan looks for the first complete span
// that does.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Shape is the top-level JSON kind a caller expects.
type Shape int

const (
	// Object expects a {...} payload.
	Object Shape = iota
	// Array expects a [...] payload.
	Array
)

func (s Shape) String() string {
	if s == Array {
		return "array"
	}
	return "object"
}

func (s Shape) delims() (open, close byte) {
	if s == Array {
		return '[', ']'
	}
	return '{', '}'
}

var (
	// ErrNoJSON means the text holds no opening delimiter for the shape.
	ErrNoJSON = errors.New("no JSON found")
	// ErrMalformed means candidate spans were found but none parsed.
	ErrMalformed = errors.New("malformed JSON")
)

// Error describes a failed extraction.
type Error struct {
	Shape   Shape
	Err     error
	Snippet string
}

func (e *Error) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("extract %s: %v", e.Shape, e.Err)
	}
	return fmt.Sprintf("extract %s: %v (near %q)", e.Shape, e.Err, e.Snippet)
}

func (e *Error) Unwrap() error { return e.Err }

// fenceLine matches a line that holds only a markdown code-fence marker,
// with an optional language tag.
var fenceLine = regexp.MustCompile("(?m)^[ \t]*```[A-Za-z]*[ \t]*$")

// StripFences removes lines that hold only a code-fence marker such as
// ```json or ```mermaid. Fences inside longer lines are left alone.
func StripFences(s string) string {
	return strings.TrimSpace(fenceLine.ReplaceAllString(s, ""))
}

// Extract returns the JSON payload of the given shape found in raw.
// It never panics; failures are reported as *Error.
//
// The reply is scanned as received first, so payload strings that contain
// code fences come back unchanged. Fence lines are stripped only when that
// scan finds nothing usable.
func Extract(raw string, shape Shape) (json.RawMessage, error) {
	out, err := scan(raw, shape)
	if err == nil {
		return out, nil
	}
	if stripped := StripFences(raw); stripped != strings.TrimSpace(raw) {
		if out, serr := scan(stripped, shape); serr == nil {
			return out, nil
		}
	}
	return nil, err
}

func scan(text string, shape Shape) (json.RawMessage, error) {
	open, close := shape.delims()

	start := strings.IndexByte(text, open)
	if start == -1 {
		return nil, &Error{Shape: shape, Err: ErrNoJSON, Snippet: snippet(text)}
	}

	// Fast path: first opening to last closing delimiter.
	var candidate string
	if end := strings.LastIndexByte(text, close); end > start {
		candidate = text[start : end+1]
	} else {
		candidate = text[start:]
	}
	if out, ok := accept(candidate, shape); ok {
		return out, nil
	}

	// Stricter fallback: balanced spans, in order of their opening delimiter.
	for i := start; i < len(text); i++ {
		if text[i] != open {
			continue
		}
		end, ok := balancedEnd(text, i, open, close)
		if !ok {
			continue
		}
		if out, ok := accept(text[i:end+1], shape); ok {
			return out, nil
		}
	}

	return nil, &Error{Shape: shape, Err: ErrMalformed, Snippet: snippet(candidate)}
}

// accept returns candidate (or its repaired form) when it is valid JSON of the shape.
func accept(candidate string, shape Shape) (json.RawMessage, bool) {
	if isShape(candidate, shape) {
		return json.RawMessage(candidate), true
	}
	repaired := Repair(candidate)
	if repaired != candidate && isShape(repaired, shape) {
		return json.RawMessage(repaired), true
	}
	return nil, false
}

func isShape(s string, shape Shape) bool {
	s = strings.TrimSpace(s)
	if s == "" || !json.Valid([]byte(s)) {
		return false
	}
	open, _ := shape.delims()
	return s[0] == open
}

// balancedEnd returns the index of the delimiter closing the one at start.
// Delimiters inside JSON strings are ignored.
func balancedEnd(s string, start int, open, close byte) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func snippet(s string) string {
	const max = 80
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Decode extracts the payload of the given shape and unmarshals it into T.
func Decode[T any](raw string, shape Shape) (T, error) {
	var out T
	payload, err := Extract(raw, shape)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, &Error{Shape: shape, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return out, nil
}
