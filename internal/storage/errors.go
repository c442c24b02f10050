package storage

import (
	"fmt"

	"github.com/matsen/phonebook/internal/contact"
)

// DecodeError reports a stored line that is not a well-formed contact record.
// Loading skips the line and carries on.
type DecodeError struct {
	Line int    // 1-based line number in the save file, 0 if unknown
	Raw  string // offending text, verbatim
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decoding line %d %q: %v", e.Line, e.Raw, e.Err)
	}
	return fmt.Sprintf("decoding record %q: %v", e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a contact that cannot be represented as a record.
// A persist that hits one writes nothing.
type EncodeError struct {
	Index   int // position in the collection being encoded
	Contact contact.Contact
	Err     error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding contact %d (%s): %v", e.Index+1, e.Contact, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// IOError reports a failure to read or write the save file.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
