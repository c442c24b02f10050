package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search contacts by last or first name",
	Long: `Search contacts whose last name or first name contains the query.

Matching ignores case. An empty query matches every contact.

Examples:
  phonebook search jo
  phonebook search "" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	s := mustOpenSession()
	results := s.store.Search(query)

	if jsonOutput {
		return outputJSON(contactResponses(results))
	}

	if len(results) == 0 {
		fmt.Printf("No contact found for '%s'!\n", query)
		return nil
	}
	fmt.Printf("Search results for '%s':\n", query)
	printContacts(os.Stdout, painter{enabled: isTTY(os.Stdout)}, "--- Your Contact Directory ---", results)
	return nil
}
