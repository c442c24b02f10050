package main

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts",
	Long: `List every contact in the order they were added, numbered from 1.

Example:
  phonebook list
  phonebook list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s := mustOpenSession()
	contacts := s.store.List()

	if jsonOutput {
		return outputJSON(contactResponses(contacts))
	}
	printContacts(os.Stdout, painter{enabled: isTTY(os.Stdout)}, "--- Your Contact Directory ---", contacts)
	return nil
}
