// Package seqio reads and writes the ordered sequences handed to the filter.
//
// A document must have a sequence at its top level. Elements may be any
// scalar, mapping or nested sequence.
package seqio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotSequence      = errors.New("document is not a sequence")
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Decode reads a single document from r and returns its top-level sequence.
// Empty input decodes to an empty sequence.
func Decode(r io.Reader, f Format) ([]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []any{}, nil
	}

	var doc any
	switch f {
	case FormatJson:
		doc, err = decodeJson(data)
	case FormatYaml:
		doc, err = decodeYaml(data)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "'%s'", f)
	}
	if err != nil {
		return nil, err
	}

	if doc == nil {
		return []any{}, nil
	}

	seq, ok := doc.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrNotSequence, "found %T", doc)
	}

	return seq, nil
}

func decodeYaml(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse yaml")
	}
	return doc, nil
}

func decodeJson(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse json")
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse json: unexpected data after document")
		}
		return nil, errors.Errorf("failed to parse json: unexpected %v after document", tok)
	}

	return normalizeNumbers(doc)
}

// normalizeNumbers replaces json.Number with int where the value is integral
// and float64 otherwise, matching what the yaml decoder produces.
func normalizeNumbers(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil && int64(int(i)) == i {
			return int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse json: number %s", t)
		}
		return f, nil
	case []any:
		for i := range t {
			n, err := normalizeNumbers(t[i])
			if err != nil {
				return nil, err
			}
			t[i] = n
		}
		return t, nil
	case map[string]any:
		for k := range t {
			n, err := normalizeNumbers(t[k])
			if err != nil {
				return nil, err
			}
			t[k] = n
		}
		return t, nil
	default:
		return v, nil
	}
}

// jsonValue returns a copy of v that encoding/json can write. Mapping keys
// that are not strings, which yaml allows, are converted with fmt.Sprint.
func jsonValue(v any) (any, error) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, errors.Wrapf(ErrUnsupportedValue, "%v has no json representation", t)
		}
		return t, nil
	case float32:
		return jsonValue(float64(t))
	case []any:
		out := make([]any, len(t))
		for i := range t {
			e, err := jsonValue(t[i])
			if err != nil {
				return nil, errors.Wrapf(err, "at index %d", i)
			}
			out[i] = e
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			jv, err := jsonValue(e)
			if err != nil {
				return nil, errors.Wrapf(err, "at key '%s'", k)
			}
			out[k] = jv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			key := fmt.Sprint(k)
			if _, dup := out[key]; dup {
				return nil, errors.Wrapf(ErrUnsupportedValue, "key '%s' appears twice once converted to a string", key)
			}
			jv, err := jsonValue(e)
			if err != nil {
				return nil, errors.Wrapf(err, "at key '%s'", key)
			}
			out[key] = jv
		}
		return out, nil
	default:
		return v, nil
	}
}

// Encode writes seq to w as a single document. A nil seq is written as an
// empty sequence.
func Encode(w io.Writer, f Format, seq []any) error {
	if seq == nil {
		seq = []any{}
	}

	switch f {
	case FormatJson:
		v, err := jsonValue(seq)
		if err != nil {
			return errors.Wrap(err, "failed to write json")
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to write json")
		}
		return nil
	case FormatYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(seq); err != nil {
			return errors.Wrap(err, "failed to write yaml")
		}
		return errors.Wrap(enc.Close(), "failed to write yaml")
	default:
		return errors.Wrapf(ErrUnknownFormat, "'%s'", f)
	}
}
