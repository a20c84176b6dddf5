package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ehsanranjbar/sortkeys/codec/lex"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// Document is a semi-structured object as decoded from JSON or msgpack.
// Nested objects are map[string]any and arrays are []any.
type Document = map[string]any

// ParseJSON decodes a JSON object. Numbers are kept as json.Number so no precision is lost.
func ParseJSON(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode json document: %w", err)
	}
	if dec.More() {
		return nil, errors.New("failed to decode json document: unexpected trailing data")
	}
	if d == nil {
		return nil, errors.New("failed to decode json document: null is not an object")
	}
	return d, nil
}

// ParseMsgpack decodes a msgpack map with string keys.
func ParseMsgpack(data []byte) (Document, error) {
	var d Document
	if err := msgpack.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode msgpack document: %w", err)
	}
	if d == nil {
		return nil, errors.New("failed to decode msgpack document: nil is not a map")
	}
	return d, nil
}

// ValueAt returns the value at the given path of the document in the sortable value model.
func ValueAt(d Document, path string) (lex.Value, error) {
	v, err := ExtractPath(d, path)
	if err != nil {
		return nil, err
	}

	lv, err := lex.ValueOf(v)
	if err != nil {
		return nil, fmt.Errorf("value at %q: %w", path, err)
	}
	return lv, nil
}
