package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"unicode/utf8"
)

// ErrRecordCorrupt is returned by Decode when a stored value is not a JSON object.
var ErrRecordCorrupt = errors.New("session record corrupt")

// ErrInvalidUTF8 is returned by Encode when a string in the record is not valid
// UTF-8. encoding/json would silently replace the offending bytes.
var ErrInvalidUTF8 = errors.New("session record contains invalid UTF-8")

var jsonNull = []byte("null")

// Encode serializes a record as JSON text. A nil record encodes as "{}" so that a
// written session is never read back as a miss. Strings and keys must be valid
// UTF-8.
func Encode(rec Record) ([]byte, error) {
	if rec == nil {
		rec = Record{}
	}
	data, err := json.Marshal(map[string]any(rec))
	if err != nil {
		return nil, fmt.Errorf("encode session record: %w", err)
	}
	// Marshal has already rejected cycles, so the walk terminates.
	if path, ok := findInvalidUTF8(reflect.ValueOf(rec), ""); ok {
		return nil, fmt.Errorf("encode session record: %w at %q", ErrInvalidUTF8, path)
	}
	return data, nil
}

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[interface{ MarshalText() ([]byte, error) }]()
)

// findInvalidUTF8 reports the path of the first string or map key in v that is
// not valid UTF-8. Values with their own marshalers are left to them.
func findInvalidUTF8(v reflect.Value, path string) (string, bool) {
	if !v.IsValid() {
		return "", false
	}
	if v.Type().Implements(jsonMarshalerType) || v.Type().Implements(textMarshalerType) {
		return "", false
	}

	switch v.Kind() {
	case reflect.String:
		if !utf8.ValidString(v.String()) {
			return path, true
		}
	case reflect.Interface, reflect.Pointer:
		if !v.IsNil() {
			return findInvalidUTF8(v.Elem(), path)
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			k := iter.Key()
			key := fmt.Sprint(k.Interface())
			if k.Kind() == reflect.String && !utf8.ValidString(k.String()) {
				return path + "/" + key, true
			}
			if p, bad := findInvalidUTF8(iter.Value(), path+"/"+key); bad {
				return p, true
			}
		}
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return "", false // base64 encoded
		}
		for i := 0; i < v.Len(); i++ {
			if p, bad := findInvalidUTF8(v.Index(i), fmt.Sprintf("%s/%d", path, i)); bad {
				return p, true
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if p, bad := findInvalidUTF8(v.Field(i), path+"/"+t.Field(i).Name); bad {
				return p, true
			}
		}
	}
	return "", false
}

// Decode parses stored JSON text into a record.
//
// A literal JSON null decodes to a nil record and no error; callers treat it as
// a missing session. Anything else that is not a JSON object fails with an error
// wrapping ErrRecordCorrupt. Numbers decode as json.Number so integers beyond
// 2^53 survive a load and write-back unchanged.
func Decode(data []byte) (Record, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, jsonNull) {
		return nil, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: value is not a JSON object", ErrRecordCorrupt)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrRecordCorrupt)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}
