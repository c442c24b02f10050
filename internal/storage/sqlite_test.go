package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matsen/phonebook/internal/contact"
)

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.db")
	exportedAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	contacts := []contact.Contact{
		contact.New("Doe", "Jane", "555-0100"),
		contact.New("Smith", "John", "555-0199"),
	}

	if err := ExportSQLite(path, contacts, "abc123", exportedAt); err != nil {
		t.Fatalf("ExportSQLite: %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadSnapshot returned %d contacts, want 2", len(got))
	}
	for i := range contacts {
		if !got[i].Equal(contacts[i]) {
			t.Errorf("contact %d = %v, want %v", i, got[i], contacts[i])
		}
	}

	info, err := ReadSnapshotInfo(path)
	if err != nil {
		t.Fatalf("ReadSnapshotInfo: %v", err)
	}
	if info.Contacts != 2 {
		t.Errorf("Contacts = %d, want 2", info.Contacts)
	}
	if info.SourceHash != "abc123" {
		t.Errorf("SourceHash = %q, want abc123", info.SourceHash)
	}
	if !info.ExportedAt.Equal(exportedAt) {
		t.Errorf("ExportedAt = %v, want %v", info.ExportedAt, exportedAt)
	}
}

func TestExportSQLite_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.db")
	now := time.Now()

	first := []contact.Contact{
		contact.New("A", "a", "1"),
		contact.New("B", "b", "2"),
		contact.New("C", "c", "3"),
	}
	if err := ExportSQLite(path, first, "h1", now); err != nil {
		t.Fatalf("ExportSQLite (first): %v", err)
	}

	second := []contact.Contact{contact.New("D", "d", "4")}
	if err := ExportSQLite(path, second, "h2", now); err != nil {
		t.Fatalf("ExportSQLite (second): %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got) != 1 || got[0].LastName != "D" {
		t.Errorf("ReadSnapshot = %v, want only D", got)
	}

	info, err := ReadSnapshotInfo(path)
	if err != nil {
		t.Fatalf("ReadSnapshotInfo: %v", err)
	}
	if info.SourceHash != "h2" {
		t.Errorf("SourceHash = %q, want h2", info.SourceHash)
	}
}

func TestReadSnapshot_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	if _, err := ReadSnapshot(path); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("ReadSnapshot error = %v, want ErrNoSnapshot", err)
	}
	if _, err := ReadSnapshotInfo(path); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("ReadSnapshotInfo error = %v, want ErrNoSnapshot", err)
	}
}
