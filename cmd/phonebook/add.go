package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddResult is the response for the add command.
type AddResult struct {
	Status  string          `json:"status"`
	Contact ContactResponse `json:"contact"`
}

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <last-name> <first-name> <phone-number>",
	Short: "Add a contact",
	Long: `Add a contact to the end of the list and save the file.

If saving fails the command exits with status 4: the contact was not
written to disk.

Example:
  phonebook add Doe Jane "+1 555 0100"`,
	Args: cobra.ExactArgs(3),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	s := mustOpenSession()

	c, err := s.store.Add(args[0], args[1], args[2])
	if err != nil {
		exitOnDivergence(err)
	}

	if jsonOutput {
		return outputJSON(AddResult{
			Status: "added",
			Contact: ContactResponse{
				Number:      s.store.Len(),
				LastName:    c.LastName,
				FirstName:   c.FirstName,
				PhoneNumber: c.PhoneNumber,
			},
		})
	}
	fmt.Printf("Added contact: %s\n", c)
	return nil
}
