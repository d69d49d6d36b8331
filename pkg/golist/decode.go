package golist

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeError reports a value that could not be decoded.
// Offset is the byte position in the input where the failing value starts.
type DecodeError struct {
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode package stream at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying encoding/json error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Decode splits buf into its concatenated JSON values and returns one
// [PackageRecord] per value, in input order.
//
// Whitespace between values is optional. An empty or whitespace-only buffer
// yields an empty result. Values that are valid JSON but not objects
// (arrays, strings, numbers) are kept as empty records so positions stay
// aligned with the input. Within an object, a field with an unexpected type
// is treated as absent; the other fields are still decoded.
//
// The first malformed or truncated value stops decoding and is reported as a
// [*DecodeError]; records decoded before it are discarded.
func Decode(buf []byte) ([]PackageRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(buf))
	var records []PackageRecord
	for {
		start := skipSpace(buf, int(dec.InputOffset()))
		if start >= len(buf) {
			return records, nil
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &DecodeError{Offset: start, Err: err}
		}
		records = append(records, coerce(raw))
	}
}

// coerce converts a single decoded value into a record. Keys are matched
// exactly. ImportPath and Deps are decoded independently of each other and
// of the informational fields, so a mistyped field only zeroes itself.
func coerce(raw json.RawMessage) PackageRecord {
	var rec PackageRecord
	if len(raw) == 0 || raw[0] != '{' {
		return rec
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return rec
	}

	field(fields, "ImportPath", &rec.ImportPath)
	field(fields, "Deps", &rec.Deps)
	field(fields, "Name", &rec.Name)
	field(fields, "Standard", &rec.Standard)

	var mod Module
	if field(fields, "Module", &mod) {
		rec.Module = &mod
	}
	return rec
}

// field decodes fields[key] into dst and reports whether it succeeded.
// A missing key, a null value or a type mismatch leaves dst unchanged.
func field[T any](fields map[string]json.RawMessage, key string, dst *T) bool {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

// skipSpace returns the first offset at or after i that is not JSON
// whitespace. It matches the set encoding/json skips between values.
func skipSpace(buf []byte, i int) int {
	for i < len(buf) {
		switch buf[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}
