// Package phonebook owns the in-memory contact collection and keeps the save
// file in step with it.
//
// Every mutation rewrites the whole save file. Encoding happens for the full
// collection before anything is written, so a successful save always leaves a
// complete snapshot on disk. A failed save after a mutation is reported as a
// *DivergenceError: the change is live in memory but not on disk.
package phonebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/matsen/phonebook/internal/contact"
	"github.com/matsen/phonebook/internal/storage"
)

// CancelChoice is the chooser answer that abandons a delete.
const CancelChoice = 0

// Chooser picks one contact among several matches. It returns a 1-based
// index into matches, or CancelChoice.
type Chooser func(ctx context.Context, matches []contact.Contact) (int, error)

// Confirmer asks whether target should really be deleted.
type Confirmer func(ctx context.Context, target contact.Contact) (bool, error)

// DeleteOutcome says how a delete request ended.
type DeleteOutcome int

const (
	DeleteNotFound DeleteOutcome = iota
	DeleteCancelled
	Deleted
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteNotFound:
		return "not_found"
	case DeleteCancelled:
		return "cancelled"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("DeleteOutcome(%d)", int(o))
	}
}

// DeleteResult reports what a delete did.
type DeleteResult struct {
	Outcome DeleteOutcome
	Matches int             // number of contacts matching the query
	Contact contact.Contact // the selected contact, when one was selected
}

// DivergenceError is returned when a mutation took effect in memory but the
// save that followed it failed. The save file no longer reflects the session.
type DivergenceError struct {
	Op      string // "add" or "delete"
	Contact contact.Contact
	Err     error
}

func (e *DivergenceError) Error() string {
	switch e.Op {
	case "add":
		return fmt.Sprintf("contact %s was added to this session but saving failed; it will be lost on restart unless a later save succeeds: %v", e.Contact, e.Err)
	case "delete":
		return fmt.Sprintf("contact %s was removed from this session but saving failed; the save file may still contain it: %v", e.Contact, e.Err)
	default:
		return fmt.Sprintf("%s: save failed, session and save file have diverged: %v", e.Op, e.Err)
	}
}

func (e *DivergenceError) Unwrap() error { return e.Err }

var (
	errNoChooser   = errors.New("several contacts match but no chooser was provided")
	errNoConfirmer = errors.New("no confirmer was provided")
)

// Store holds the live contact collection for one session.
type Store struct {
	path     string
	logger   *slog.Logger
	contacts []contact.Contact
	skipped  []*storage.DecodeError
}

// New returns an empty store backed by the save file at path.
// A nil logger discards log output.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// Open creates a store and loads it from path. A read failure is returned
// alongside a usable, empty store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := New(path, logger)
	_, err := s.Load()
	return s, err
}

// Path returns the save file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the save file and replaces the in-memory collection with the
// records it decodes, in file order. Malformed lines are logged and skipped;
// blank lines are ignored. If the file cannot be read the collection is left
// empty and the *storage.IOError is returned.
func (s *Store) Load() ([]contact.Contact, error) {
	s.contacts = nil
	s.skipped = nil

	lines, err := storage.ReadLines(s.path)
	if err != nil {
		s.logger.Error("could not read contacts file", "path", s.path, "err", err)
		return s.List(), err
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		c, err := storage.DecodeRecord(line)
		if err != nil {
			var decErr *storage.DecodeError
			if !errors.As(err, &decErr) {
				decErr = &storage.DecodeError{Raw: line, Err: err}
			}
			decErr.Line = i + 1
			s.skipped = append(s.skipped, decErr)
			s.logger.Warn("skipping malformed record", "path", s.path, "line", i+1, "raw", line, "err", decErr.Err)
			continue
		}
		s.contacts = append(s.contacts, c)
	}

	s.logger.Debug("loaded contacts", "path", s.path, "count", len(s.contacts), "skipped", len(s.skipped))
	return s.List(), nil
}

// Skipped returns the records dropped by the last Load.
func (s *Store) Skipped() []*storage.DecodeError {
	return slices.Clone(s.skipped)
}

// Len returns the number of contacts in the collection.
func (s *Store) Len() int {
	return len(s.contacts)
}

// List returns a copy of the collection in insertion order. The result is
// never nil.
func (s *Store) List() []contact.Contact {
	out := make([]contact.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Search returns the contacts whose last or first name contains query,
// ignoring case, in collection order. An empty query matches everything.
func (s *Store) Search(query string) []contact.Contact {
	return contact.Filter(s.contacts, query)
}

// Add appends a new contact and saves the collection. The contact is kept in
// memory even if saving fails; in that case a *DivergenceError is returned.
func (s *Store) Add(lastName, firstName, phoneNumber string) (contact.Contact, error) {
	c := contact.New(lastName, firstName, phoneNumber)
	s.contacts = append(s.contacts, c)

	if err := s.persist(); err != nil {
		s.logger.Error("contact added in memory but not saved", "contact", c.String(), "err", err)
		return c, &DivergenceError{Op: "add", Contact: c, Err: err}
	}

	s.logger.Debug("contact added", "contact", c.String())
	return c, nil
}

// Delete removes one contact matching query.
//
// With no match nothing happens. With several matches choose picks one by its
// 1-based position among the matches; CancelChoice or an out-of-range answer
// abandons the delete. The selected contact is then passed to confirm, and
// only a true answer removes it and saves. If that save fails the contact
// stays removed and a *DivergenceError is returned.
func (s *Store) Delete(ctx context.Context, query string, choose Chooser, confirm Confirmer) (DeleteResult, error) {
	matches := s.Search(query)
	result := DeleteResult{Outcome: DeleteNotFound, Matches: len(matches)}
	if len(matches) == 0 {
		return result, nil
	}

	result.Outcome = DeleteCancelled

	target := matches[0]
	if len(matches) > 1 {
		if choose == nil {
			return result, errNoChooser
		}
		choice, err := choose(ctx, slices.Clone(matches))
		if err != nil {
			return result, fmt.Errorf("choosing contact: %w", err)
		}
		if choice <= CancelChoice || choice > len(matches) {
			return result, nil
		}
		target = matches[choice-1]
	}
	result.Contact = target

	if confirm == nil {
		return result, errNoConfirmer
	}
	ok, err := confirm(ctx, target)
	if err != nil {
		return result, fmt.Errorf("confirming delete: %w", err)
	}
	if !ok {
		return result, nil
	}

	s.remove(target)
	result.Outcome = Deleted

	if err := s.persist(); err != nil {
		s.logger.Error("contact removed in memory but not saved", "contact", target.String(), "err", err)
		return result, &DivergenceError{Op: "delete", Contact: target, Err: err}
	}

	s.logger.Debug("contact deleted", "contact", target.String())
	return result, nil
}

// remove drops the first contact equal to target.
func (s *Store) remove(target contact.Contact) {
	idx := slices.IndexFunc(s.contacts, target.Equal)
	if idx >= 0 {
		s.contacts = slices.Delete(s.contacts, idx, idx+1)
	}
}

// Save writes the current collection to disk. It is exposed for callers
// that want to retry after a divergence.
func (s *Store) Save() error {
	return s.persist()
}

// persist encodes every contact, then replaces the save file. Nothing is
// written unless every contact encodes.
func (s *Store) persist() error {
	lines, err := storage.EncodeAll(s.contacts)
	if err != nil {
		return fmt.Errorf("save aborted: %w", err)
	}

	if err := storage.WriteLines(s.path, lines); err != nil {
		return err
	}
	return nil
}
