package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/phonebook/internal/contact"
	"github.com/matsen/phonebook/internal/phonebook"
	"github.com/matsen/phonebook/internal/storage"
)

func TestDeleteAnswerers(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		pickSet     bool
		pick        int
		yes         bool
		interactive bool
		input       string
		wantErr     error
		wantOutcome phonebook.DeleteOutcome
		wantLeft    []string
		wantPrompt  bool
	}{
		{
			name: "pick and yes", query: "mart",
			pickSet: true, pick: 2, yes: true,
			wantOutcome: phonebook.Deleted, wantLeft: []string{"Martin", "Doe"},
		},
		{
			name: "pick zero cancels", query: "mart",
			pickSet: true, pick: 0, yes: true,
			wantOutcome: phonebook.DeleteCancelled, wantLeft: []string{"Martin", "Martinez", "Doe"},
		},
		{
			name: "several matches without pick", query: "mart",
			yes: true, wantErr: errNotInteractive,
			wantOutcome: phonebook.DeleteCancelled, wantLeft: []string{"Martin", "Martinez", "Doe"},
		},
		{
			name: "single match with yes", query: "doe",
			yes: true,
			wantOutcome: phonebook.Deleted, wantLeft: []string{"Martin", "Martinez"},
		},
		{
			name: "single match without yes", query: "doe",
			wantErr:     errNotInteractive,
			wantOutcome: phonebook.DeleteCancelled, wantLeft: []string{"Martin", "Martinez", "Doe"},
		},
		{
			name: "terminal answers both", query: "mart",
			interactive: true, input: "2\ny\n", wantPrompt: true,
			wantOutcome: phonebook.Deleted, wantLeft: []string{"Martin", "Doe"},
		},
		{
			name: "pick flag with terminal confirmation", query: "mart",
			pickSet: true, pick: 1, interactive: true, input: "n\n", wantPrompt: true,
			wantOutcome: phonebook.DeleteCancelled, wantLeft: []string{"Martin", "Martinez", "Doe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seededStore(t,
				contact.New("Martin", "Paul", "1"),
				contact.New("Martinez", "Ana", "2"),
				contact.New("Doe", "Jane", "3"),
			)
			var out bytes.Buffer
			c := newConsole(s, strings.NewReader(tt.input), &out, &bytes.Buffer{})

			choose, confirm := deleteAnswerers(tt.pickSet, tt.pick, tt.yes, tt.interactive, c)
			res, err := s.Delete(context.Background(), tt.query, choose, confirm)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Delete error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if res.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %v, want %v", res.Outcome, tt.wantOutcome)
			}
			if prompted := out.Len() > 0; prompted != tt.wantPrompt {
				t.Errorf("prompted = %v, want %v:\n%s", prompted, tt.wantPrompt, out.String())
			}

			left := s.List()
			if len(left) != len(tt.wantLeft) {
				t.Fatalf("remaining = %v, want %v", left, tt.wantLeft)
			}
			for i, name := range tt.wantLeft {
				if left[i].LastName != name {
					t.Errorf("contact %d = %s, want %s", i, left[i].LastName, name)
				}
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	s, err := phonebook.Open(filepath.Join(t.TempDir(), "missing", "PhoneBook.txt"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, addErr := s.Add("Doe", "Jane", "1")
	if addErr == nil {
		t.Fatal("expected the save to fail")
	}

	if got := saveExitCode(addErr); got != ExitDiverged {
		t.Errorf("saveExitCode(divergence) = %d, want %d", got, ExitDiverged)
	}
	ioErr := &storage.IOError{Op: "read", Path: "x", Err: errors.New("boom")}
	if got := saveExitCode(ioErr); got != ExitDataError {
		t.Errorf("saveExitCode(io) = %d, want %d", got, ExitDataError)
	}

	if got := deleteExitCode(addErr); got != ExitDiverged {
		t.Errorf("deleteExitCode(divergence) = %d, want %d", got, ExitDiverged)
	}
	if got := deleteExitCode(errNotInteractive); got != ExitError {
		t.Errorf("deleteExitCode(not interactive) = %d, want %d", got, ExitError)
	}
}
