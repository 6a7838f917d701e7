package term

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for content-addressed
// identity computation. Terms encode as tagged arrays:
//
//	Sym{"mk"}          -> ["sym","mk"]
//	App{f, a}          -> ["app",<f>,<a>]
//
// Key properties, following RFC 8785:
//  1. No HTML escaping (< > & are NOT escaped)
//  2. Strings are NFC normalized
//  3. Fixed element order (arrays only, no objects)
//
// The surface lexer restricts identifiers to ASCII, so the exotic
// RFC 8785 corners (UTF-16 key ordering, U+2028/U+2029) never arise
// in term encodings.
func MarshalCanonical(t Term) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalCanonicalTerm(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalCanonicalTerm(buf *bytes.Buffer, t Term) error {
	switch v := t.(type) {
	case Sym:
		buf.WriteString(`["sym",`)
		s, err := marshalCanonicalString(v.Name)
		if err != nil {
			return err
		}
		buf.Write(s)
		buf.WriteByte(']')
		return nil
	case App:
		buf.WriteString(`["app",`)
		if err := marshalCanonicalTerm(buf, v.Fn); err != nil {
			return err
		}
		buf.WriteByte(',')
		if err := marshalCanonicalTerm(buf, v.Arg); err != nil {
			return err
		}
		buf.WriteByte(']')
		return nil
	default:
		return fmt.Errorf("unknown term node %T", t)
	}
}

// UnmarshalCanonical decodes the tagged-array encoding produced by
// MarshalCanonical. Round-trips exactly: the proof log stores terms in
// this form and reads them back for replay.
func UnmarshalCanonical(data []byte) (Term, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode canonical term: %w", err)
	}
	return decodeCanonical(raw)
}

func decodeCanonical(raw any) (Term, error) {
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("canonical term must be a tagged array, got %T", raw)
	}
	tag, ok := arr[0].(string)
	if !ok {
		return nil, fmt.Errorf("canonical term tag must be a string, got %T", arr[0])
	}
	switch tag {
	case "sym":
		if len(arr) != 2 {
			return nil, fmt.Errorf("sym encoding has %d elements, want 2", len(arr))
		}
		name, ok := arr[1].(string)
		if !ok {
			return nil, fmt.Errorf("sym name must be a string, got %T", arr[1])
		}
		return Sym{Name: name}, nil
	case "app":
		if len(arr) != 3 {
			return nil, fmt.Errorf("app encoding has %d elements, want 3", len(arr))
		}
		fn, err := decodeCanonical(arr[1])
		if err != nil {
			return nil, err
		}
		arg, err := decodeCanonical(arr[2])
		if err != nil {
			return nil, err
		}
		return App{Fn: fn, Arg: arg}, nil
	default:
		return nil, fmt.Errorf("unknown canonical term tag %q", tag)
	}
}

// marshalCanonicalString encodes a JSON string with NFC normalization
// and HTML escaping disabled.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}
