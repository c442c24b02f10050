// Package storage handles the on-disk phone book: one JSON record per line,
// rewritten in full on every save, plus SQLite snapshots for export.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/matsen/phonebook/internal/contact"
)

var (
	errInvalidUTF8   = errors.New("field is not valid UTF-8")
	errMissingField  = errors.New("missing field")
	errNotJSONObject = errors.New("record is not a JSON object")
	errRecordTooLong = fmt.Errorf("record is %d bytes or longer", MaxJSONLLineCapacity)
	errTrailingData  = errors.New("trailing data after record")
)

// record mirrors contact.Contact with pointer fields so that absent keys can
// be told apart from empty strings.
type record struct {
	LastName    *string `json:"lastName"`
	FirstName   *string `json:"firstName"`
	PhoneNumber *string `json:"phoneNumber"`
}

// EncodeRecord serializes a contact to a single line of JSON.
// Fields that are not valid UTF-8 cannot round-trip through JSON, and a
// line of MaxJSONLLineCapacity bytes or more would not load again; both are
// rejected with an *EncodeError.
func EncodeRecord(c contact.Contact) (string, error) {
	for _, field := range []string{c.LastName, c.FirstName, c.PhoneNumber} {
		if !utf8.ValidString(field) {
			return "", &EncodeError{Contact: c, Err: errInvalidUTF8}
		}
	}

	data, err := json.Marshal(c)
	if err != nil {
		return "", &EncodeError{Contact: c, Err: err}
	}
	if len(data) >= MaxJSONLLineCapacity {
		return "", &EncodeError{Contact: c, Err: errRecordTooLong}
	}
	return string(data), nil
}

// DecodeRecord parses one line produced by EncodeRecord.
// All three fields must be present; unknown fields are rejected.
func DecodeRecord(text string) (contact.Contact, error) {
	if len(text) >= MaxJSONLLineCapacity {
		return contact.Contact{}, &DecodeError{Raw: text, Err: errRecordTooLong}
	}
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return contact.Contact{}, &DecodeError{Raw: text, Err: errNotJSONObject}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var r record
	if err := dec.Decode(&r); err != nil {
		return contact.Contact{}, &DecodeError{Raw: text, Err: err}
	}
	if dec.InputOffset() != int64(len(trimmed)) {
		return contact.Contact{}, &DecodeError{Raw: text, Err: errTrailingData}
	}

	switch {
	case r.LastName == nil:
		return contact.Contact{}, &DecodeError{Raw: text, Err: fmt.Errorf("%w: lastName", errMissingField)}
	case r.FirstName == nil:
		return contact.Contact{}, &DecodeError{Raw: text, Err: fmt.Errorf("%w: firstName", errMissingField)}
	case r.PhoneNumber == nil:
		return contact.Contact{}, &DecodeError{Raw: text, Err: fmt.Errorf("%w: phoneNumber", errMissingField)}
	}

	return contact.New(*r.LastName, *r.FirstName, *r.PhoneNumber), nil
}

// EncodeAll encodes every contact, stopping at the first failure.
// On error no lines are returned, and the *EncodeError names the offending
// contact and its position.
func EncodeAll(contacts []contact.Contact) ([]string, error) {
	lines := make([]string, 0, len(contacts))
	for i, c := range contacts {
		line, err := EncodeRecord(c)
		if err != nil {
			var encErr *EncodeError
			if errors.As(err, &encErr) {
				encErr.Index = i
			}
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
