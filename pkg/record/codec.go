/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package record

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrDecode indicates that a stored payload is not a well-formed record
var ErrDecode = errors.New("malformed record")

// Encode returns the JSON encoding of the record. Fields are always written in the
// same order so that equal records produce equal bytes.
func Encode(r *Record) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil record")
	}

	return marshalJSON(r)
}

// DecodeRecord decodes the given bytes into a record. ErrDecode is returned if the bytes are not a
// JSON object holding a record ID.
func DecodeRecord(b []byte) (*Record, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.WithMessage(ErrDecode, "not a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, errors.WithMessagef(ErrDecode, "%s", err)
	}

	if _, ok := fields[idField]; !ok {
		return nil, errors.WithMessagef(ErrDecode, "missing field [%s]", idField)
	}

	r := &Record{}
	if err := json.Unmarshal(trimmed, r); err != nil {
		return nil, errors.WithMessagef(ErrDecode, "%s", err)
	}

	return r, nil
}

// Decode decodes the given bytes. Bytes that cannot be decoded into a record are
// returned as a raw payload holding the original string. A decoded payload keeps the
// stored bytes so that it is written out exactly as stored.
func Decode(b []byte) Payload {
	r, err := DecodeRecord(b)
	if err != nil {
		return Raw(string(b))
	}

	return Payload{record: r, data: append(json.RawMessage(nil), b...)}
}

// Payload is either a decoded record or the raw string that could not be decoded
type Payload struct {
	record *Record
	data   json.RawMessage
	raw    string
}

// Structured returns a payload holding a decoded record
func Structured(r *Record) Payload {
	return Payload{record: r}
}

// Raw returns a payload holding an undecodable value
func Raw(s string) Payload {
	return Payload{raw: s}
}

// Record returns the decoded record and true, or nil and false if the payload is raw
func (p Payload) Record() (*Record, bool) {
	return p.record, p.record != nil
}

// Raw returns the raw string and true if the payload could not be decoded
func (p Payload) Raw() (string, bool) {
	return p.raw, p.record == nil
}

// IsRaw returns true if the payload could not be decoded
func (p Payload) IsRaw() bool {
	return p.record == nil
}

// MarshalJSON writes the record as a JSON object, or the raw value as a JSON string
func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p.data) > 0 {
		return p.data, nil
	}

	if p.record != nil {
		return marshalJSON(p.record)
	}

	return json.Marshal(p.raw)
}

// UnmarshalJSON reads either form written by MarshalJSON
func (p *Payload) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Raw(s)
		return nil
	}

	r, err := DecodeRecord(b)
	if err != nil {
		return err
	}

	*p = Payload{record: r, data: append(json.RawMessage(nil), b...)}

	return nil
}

// marshalJSON returns the JSON representation of the given value. This variable may be overridden by unit tests.
var marshalJSON = func(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
