package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/matsen/phonebook/internal/contact"
	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned when a snapshot database does not exist.
var ErrNoSnapshot = errors.New("snapshot not found")

// SnapshotInfo describes an exported SQLite snapshot.
type SnapshotInfo struct {
	Path       string    `json:"path"`
	Contacts   int       `json:"contacts"`
	SourceHash string    `json:"source_hash"`
	ExportedAt time.Time `json:"exported_at,omitempty"`
}

// openSnapshotDB opens or creates a snapshot database and ensures its schema.
func openSnapshotDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSnapshotSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}

func createSnapshotSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS contacts (
			position INTEGER PRIMARY KEY,
			last_name TEXT NOT NULL,
			first_name TEXT NOT NULL,
			phone_number TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(last_name, first_name);

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`
	_, err := db.Exec(schema)
	return err
}

// ExportSQLite writes contacts into the snapshot database at path, replacing
// any previous snapshot. Positions are 1-based and follow collection order.
// sourceHash identifies the save file the contacts came from.
func ExportSQLite(path string, contacts []contact.Contact, sourceHash string, exportedAt time.Time) error {
	db, err := openSnapshotDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clearing contacts: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO contacts (position, last_name, first_name, phone_number) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range contacts {
		if _, err := stmt.Exec(i+1, c.LastName, c.FirstName, c.PhoneNumber); err != nil {
			return fmt.Errorf("inserting contact %d: %w", i+1, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('source_hash', ?)`, sourceHash); err != nil {
		return fmt.Errorf("updating hash: %w", err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('exported_at', ?)`,
		exportedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("updating export time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot returns the contacts stored in a snapshot, in position order.
func ReadSnapshot(path string) ([]contact.Contact, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("checking snapshot: %w", err)
	}

	db, err := openSnapshotDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT last_name, first_name, phone_number FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []contact.Contact
	for rows.Next() {
		var c contact.Contact
		if err := rows.Scan(&c.LastName, &c.FirstName, &c.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// ReadSnapshotInfo returns metadata about the snapshot at path.
func ReadSnapshotInfo(path string) (*SnapshotInfo, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("checking snapshot: %w", err)
	}

	db, err := openSnapshotDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	info := &SnapshotInfo{Path: path}

	if err := db.QueryRow("SELECT COUNT(*) FROM contacts").Scan(&info.Contacts); err != nil {
		return nil, fmt.Errorf("counting contacts: %w", err)
	}

	hash, err := getMeta(db, "source_hash")
	if err != nil {
		return nil, fmt.Errorf("reading hash: %w", err)
	}
	info.SourceHash = hash

	exported, err := getMeta(db, "exported_at")
	if err != nil {
		return nil, fmt.Errorf("reading export time: %w", err)
	}
	if exported != "" {
		t, err := time.Parse(time.RFC3339, exported)
		if err != nil {
			return nil, fmt.Errorf("parsing export time: %w", err)
		}
		info.ExportedAt = t
	}

	return info, nil
}

// getMeta retrieves a value from the _meta table, or "" if unset.
func getMeta(db *sql.DB, key string) (string, error) {
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}
