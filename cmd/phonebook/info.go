package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/phonebook/internal/config"
	"github.com/matsen/phonebook/internal/storage"
	"github.com/spf13/cobra"
)

var infoSQLitePath string

// InfoResult is the response for the info command.
type InfoResult struct {
	Path     string                `json:"path"`
	Contacts int                   `json:"contacts"`
	Skipped  int                   `json:"skipped"`
	Size     int64                 `json:"size"`
	Hash     string                `json:"hash"`
	Snapshot *storage.SnapshotInfo `json:"snapshot,omitempty"`
	InSync   *bool                 `json:"in_sync,omitempty"`
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoSQLitePath, "sqlite", "", "Also check whether this SQLite snapshot is current")
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show details about the contacts file",
	Long: `Show where the contacts file is, how many contacts it holds, how many
lines could not be read, and its content hash.

With --sqlite, also report whether an exported snapshot matches the file.

Example:
  phonebook info --sqlite ~/contacts.db`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	s := mustOpenSession()
	path := s.store.Path()

	result := InfoResult{
		Path:     path,
		Contacts: s.store.Len(),
		Skipped:  len(s.store.Skipped()),
	}

	if stat, err := os.Stat(path); err == nil {
		result.Size = stat.Size()
	}

	hash, err := storage.ComputeHash(path)
	if err != nil {
		exitWithError(ExitDataError, "hashing contacts file: %v", err)
	}
	result.Hash = hash

	if infoSQLitePath != "" {
		snap, err := storage.ReadSnapshotInfo(config.ExpandPath(infoSQLitePath))
		switch {
		case errors.Is(err, storage.ErrNoSnapshot):
			inSync := false
			result.InSync = &inSync
		case err != nil:
			exitWithError(ExitError, "reading snapshot: %v", err)
		default:
			inSync := snap.SourceHash == hash
			result.Snapshot = snap
			result.InSync = &inSync
		}
	}

	if jsonOutput {
		return outputJSON(result)
	}

	fmt.Printf("File:     %s\n", result.Path)
	fmt.Printf("Contacts: %d\n", result.Contacts)
	if result.Skipped > 0 {
		fmt.Printf("Skipped:  %d unreadable line(s)\n", result.Skipped)
	}
	fmt.Printf("Size:     %s\n", formatBytes(result.Size))
	fmt.Printf("Hash:     %s\n", result.Hash)
	if result.InSync != nil {
		switch {
		case result.Snapshot == nil:
			fmt.Printf("Snapshot: none at %s\n", infoSQLitePath)
		case *result.InSync:
			fmt.Printf("Snapshot: up to date (%d contacts, exported %s)\n",
				result.Snapshot.Contacts, result.Snapshot.ExportedAt.Local().Format("2006-01-02 15:04"))
		default:
			fmt.Printf("Snapshot: stale, run 'phonebook export --sqlite %s'\n", infoSQLitePath)
		}
	}
	return nil
}

// formatBytes formats bytes in a human-readable way.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
