package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errNotObject = errors.New("expected a JSON object")

// Merge folds src onto dst and returns the result; neither input is
// modified. For each key in src, two records merge recursively; anything
// else (scalars, arrays, null) replaces the current value outright. Arrays
// are never merged element-wise. Keys absent from src are kept from dst.
func Merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}

	for k, incoming := range src {
		incomingRecord, incomingIsRecord := incoming.(map[string]any)
		currentRecord, currentIsRecord := out[k].(map[string]any)

		if incomingIsRecord && currentIsRecord {
			out[k] = Merge(currentRecord, incomingRecord)
			continue
		}

		out[k] = incoming
	}

	return out
}

// DecodePatch parses a JSON patch body. The body must be a JSON object.
func DecodePatch(data []byte) (map[string]any, error) {
	patch, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return patch, nil
}

// decodeObject decodes a JSON object keeping numbers exact.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}

	if out == nil {
		return nil, errNotObject
	}

	return out, nil
}
