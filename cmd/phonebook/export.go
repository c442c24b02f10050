package main

import (
	"fmt"
	"time"

	"github.com/matsen/phonebook/internal/config"
	"github.com/matsen/phonebook/internal/storage"
	"github.com/spf13/cobra"
)

var exportSQLitePath string

// ExportResult is the response for the export command.
type ExportResult struct {
	Path       string `json:"path"`
	Contacts   int    `json:"contacts"`
	SourceHash string `json:"source_hash"`
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportSQLitePath, "sqlite", "", "Path of the SQLite database to write")
	exportCmd.MarkFlagRequired("sqlite")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export contacts to a SQLite database",
	Long: `Write a snapshot of all contacts into a SQLite database.

The database gets a contacts table (position, last_name, first_name,
phone_number) and a _meta table recording the hash of the contacts file
the snapshot was taken from. Exporting again replaces the snapshot.

Example:
  phonebook export --sqlite ~/contacts.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	s := mustOpenSession()

	hash, err := storage.ComputeHash(s.store.Path())
	if err != nil {
		exitWithError(ExitDataError, "hashing contacts file: %v", err)
	}

	dbPath := config.ExpandPath(exportSQLitePath)
	contacts := s.store.List()
	if err := storage.ExportSQLite(dbPath, contacts, hash, time.Now()); err != nil {
		exitWithError(ExitError, "exporting to %s: %v", dbPath, err)
	}
	s.logger.Info("exported snapshot", "path", dbPath, "count", len(contacts))

	if jsonOutput {
		return outputJSON(ExportResult{Path: dbPath, Contacts: len(contacts), SourceHash: hash})
	}
	fmt.Printf("Exported %d contacts to %s\n", len(contacts), dbPath)
	return nil
}
