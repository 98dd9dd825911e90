// Package codec owns the bytes<->tree boundary for the study documents.
// Malformed input surfaces as *ParseError with the byte offset, never as a
// validation failure.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ParseError reports content that is not well-formed JSON.
type ParseError struct {
	Offset int64
	Reason string
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("invalid JSON at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("invalid JSON: %s", e.Reason)
}

// IsParseError checks if an error is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Parse decodes data into a generic tree (map/slice/scalar nodes).
// json.Number is used for numeric scalars so values round-trip unchanged.
func Parse(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, wrapParseError(err)
	}
	// Trailing garbage after the top-level value is malformed content too.
	if dec.More() {
		return nil, &ParseError{Offset: dec.InputOffset(), Reason: "unexpected trailing content"}
	}
	return root, nil
}

// Serialize encodes a document with stable two-space indentation. The escape
// of non-ASCII text is disabled so stored phrases stay human-readable.
func Serialize(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

func wrapParseError(err error) error {
	switch e := err.(type) {
	case *json.SyntaxError:
		return &ParseError{Offset: e.Offset, Reason: e.Error()}
	case *json.UnmarshalTypeError:
		return &ParseError{Offset: e.Offset, Reason: e.Error()}
	default:
		return &ParseError{Reason: err.Error()}
	}
}
