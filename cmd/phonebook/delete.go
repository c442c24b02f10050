package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matsen/phonebook/internal/contact"
	"github.com/matsen/phonebook/internal/phonebook"
	"github.com/spf13/cobra"
)

var (
	deletePick int
	deleteYes  bool
)

// errNotInteractive is returned when a prompt is needed but stdin is not a terminal.
var errNotInteractive = errors.New("stdin is not a terminal; use --pick and --yes to answer prompts")

// DeleteResponse is the response for the delete command.
type DeleteResponse struct {
	Status  string           `json:"status"`
	Matches int              `json:"matches"`
	Contact *ContactResponse `json:"contact,omitempty"`
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().IntVar(&deletePick, "pick", 0, "Number of the match to delete when several match (0 cancels)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}

var deleteCmd = &cobra.Command{
	Use:   "delete <query>",
	Short: "Delete a contact",
	Long: `Delete one contact whose last or first name contains the query.

When several contacts match, they are listed and you pick one by number.
The contact is only removed after confirmation. Without a terminal, pass
--pick and --yes to answer those questions up front.

Examples:
  phonebook delete doe
  phonebook delete martin --pick 2 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	query := args[0]
	s := mustOpenSession()

	c := newConsole(s.store, os.Stdin, os.Stdout, os.Stderr)
	c.p = painter{enabled: isTTY(os.Stdout)}
	choose, confirm := deleteAnswerers(cmd.Flags().Changed("pick"), deletePick, deleteYes, isTTY(os.Stdin), c)

	res, err := s.store.Delete(cmd.Context(), query, choose, confirm)
	if err != nil {
		exitWithError(deleteExitCode(err), "%v", err)
	}

	if jsonOutput {
		resp := DeleteResponse{Status: res.Outcome.String(), Matches: res.Matches}
		if res.Outcome != phonebook.DeleteNotFound && res.Contact != (contact.Contact{}) {
			resp.Contact = &ContactResponse{
				LastName:    res.Contact.LastName,
				FirstName:   res.Contact.FirstName,
				PhoneNumber: res.Contact.PhoneNumber,
			}
		}
		return outputJSON(resp)
	}

	switch res.Outcome {
	case phonebook.DeleteNotFound:
		fmt.Printf("No contact found for '%s'!\n", query)
	case phonebook.DeleteCancelled:
		fmt.Println("Delete cancelled.")
	case phonebook.Deleted:
		fmt.Printf("Deleted contact: %s\n", res.Contact)
	}
	return nil
}

// deleteExitCode maps a delete failure to an exit code. Anything other than a
// failed save, such as a refused prompt, is a plain error.
func deleteExitCode(err error) int {
	var divErr *phonebook.DivergenceError
	if errors.As(err, &divErr) {
		return ExitDiverged
	}
	return ExitError
}

// deleteAnswerers builds the chooser and confirmer for the delete command.
// Flags answer up front; otherwise the console asks, provided stdin is a
// terminal.
func deleteAnswerers(pickSet bool, pick int, yes, interactive bool, c *console) (phonebook.Chooser, phonebook.Confirmer) {
	choose := func(ctx context.Context, matches []contact.Contact) (int, error) {
		if pickSet {
			return pick, nil
		}
		if !interactive {
			return phonebook.CancelChoice, errNotInteractive
		}
		return c.choose(ctx, matches)
	}
	confirm := func(ctx context.Context, target contact.Contact) (bool, error) {
		if yes {
			return true, nil
		}
		if !interactive {
			return false, errNotInteractive
		}
		return c.confirm(ctx, target)
	}
	return choose, confirm
}
