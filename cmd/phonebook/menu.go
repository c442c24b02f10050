package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matsen/phonebook/internal/contact"
	"github.com/matsen/phonebook/internal/phonebook"
	"github.com/spf13/cobra"
)

// errEndOfInput means the user closed standard input mid-prompt.
var errEndOfInput = errors.New("end of input")

func runMenu(cmd *cobra.Command, args []string) error {
	s, err := openSession(os.Stdout, os.Stderr)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	c := newConsole(s.store, os.Stdin, os.Stdout, os.Stderr)
	c.p = painter{enabled: isTTY(os.Stdout)}
	return c.run(cmd.Context())
}

// console is the interactive text menu over a store.
type console struct {
	store  *phonebook.Store
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	p      painter
}

func newConsole(store *phonebook.Store, in io.Reader, out, errOut io.Writer) *console {
	return &console{
		store:  store,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// run shows the menu until the user quits or input ends.
func (c *console) run(ctx context.Context) error {
	for {
		c.showMenu()

		choice, err := c.readLine()
		if err != nil {
			if errors.Is(err, errEndOfInput) {
				fmt.Fprintln(c.out)
				break
			}
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.list()
		case "2":
			err = c.add()
		case "3":
			err = c.search()
		case "4":
			err = c.delete(ctx)
		case "5":
			fmt.Fprintln(c.out, "Thank you for using GestContact. Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please type 1, 2, 3, 4 or 5.")
		}

		if errors.Is(err, errEndOfInput) {
			break
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(c.out, "Thank you for using GestContact. Goodbye!")
	return nil
}

func (c *console) showMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.p.paint(headerStyle, "--- GestContact Menu ---"))
	fmt.Fprintln(c.out, "1. List all contacts")
	fmt.Fprintln(c.out, "2. Add a new contact")
	fmt.Fprintln(c.out, "3. Search for a contact")
	fmt.Fprintln(c.out, "4. Delete a contact")
	fmt.Fprintln(c.out, "5. Quit")
	fmt.Fprint(c.out, "Your choice: ")
}

// readLine reads one line without its terminator. A final line without a
// newline is returned normally; errEndOfInput follows it.
func (c *console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimRight(line, "\r\n"), nil
			}
			return "", errEndOfInput
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prints a prompt on its own line and reads the answer.
func (c *console) ask(prompt string) (string, error) {
	fmt.Fprintln(c.out, prompt)
	return c.readLine()
}

func (c *console) list() {
	printContacts(c.out, c.p, "--- Your Contact Directory ---", c.store.List())
}

func (c *console) add() error {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.p.paint(headerStyle, "--- Add a new contact ---"))

	lastName, err := c.ask("Enter the last name:")
	if err != nil {
		return err
	}
	firstName, err := c.ask("Enter the first name:")
	if err != nil {
		return err
	}
	phone, err := c.ask("Enter the phone number:")
	if err != nil {
		return err
	}

	if _, err := c.store.Add(lastName, firstName, phone); err != nil {
		c.reportFailure(err)
		return nil
	}
	fmt.Fprintln(c.out, c.p.paint(successStyle, "Contact added successfully."))
	return nil
}

func (c *console) search() error {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.p.paint(headerStyle, "--- Search for a contact ---"))

	query, err := c.ask("Enter a last name or first name to search for:")
	if err != nil {
		return err
	}

	results := c.store.Search(query)
	if len(results) == 0 {
		fmt.Fprintf(c.out, "No contact found for '%s'!\n", query)
		return nil
	}
	fmt.Fprintf(c.out, "Search results for '%s':\n", query)
	printContacts(c.out, c.p, "--- Your Contact Directory ---", results)
	return nil
}

func (c *console) delete(ctx context.Context) error {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.p.paint(headerStyle, "--- Delete a contact ---"))

	query, err := c.ask("Enter the last name or first name of the contact:")
	if err != nil {
		return err
	}

	res, err := c.store.Delete(ctx, query, c.choose, c.confirm)
	if errors.Is(err, errEndOfInput) {
		return err
	}
	if err != nil {
		c.reportFailure(err)
		return nil
	}

	switch res.Outcome {
	case phonebook.DeleteNotFound:
		fmt.Fprintf(c.out, "No contact found for '%s'!\n", query)
	case phonebook.DeleteCancelled:
		fmt.Fprintln(c.out, "Delete cancelled.")
	case phonebook.Deleted:
		fmt.Fprintln(c.out, c.p.paint(successStyle, "Contact deleted successfully."))
	}
	return nil
}

// choose is the interactive phonebook.Chooser.
func (c *console) choose(_ context.Context, matches []contact.Contact) (int, error) {
	fmt.Fprintln(c.out, "Several contacts found. Which one do you want to delete?")
	printContacts(c.out, c.p, "--- Matching contacts ---", matches)

	answer, err := c.ask("Enter the number to delete (0 to cancel):")
	if err != nil {
		return phonebook.CancelChoice, err
	}
	n, ok := parseChoice(answer)
	if !ok {
		fmt.Fprintln(c.out, "Invalid input.")
		return phonebook.CancelChoice, nil
	}
	return n, nil
}

// confirm is the interactive phonebook.Confirmer.
func (c *console) confirm(_ context.Context, target contact.Contact) (bool, error) {
	fmt.Fprintf(c.out, "Contact found: %s\n", target)
	answer, err := c.ask("Are you sure you want to delete this contact? (y/N):")
	if err != nil {
		return false, err
	}
	return isAffirmative(answer), nil
}

// reportFailure prints an error from the store. Divergence gets a warning of
// its own because the save file no longer matches the session.
func (c *console) reportFailure(err error) {
	var divErr *phonebook.DivergenceError
	if errors.As(err, &divErr) {
		fmt.Fprintln(c.errOut, c.p.paint(warningStyle, "Warning: "+divErr.Error()))
		return
	}
	fmt.Fprintln(c.errOut, c.p.paint(errorStyle, "Error: "+err.Error()))
}

// parseChoice parses a 1-based menu number. Anything that is not a
// non-negative integer is rejected.
func parseChoice(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// isAffirmative accepts y, yes, o and oui in any case.
func isAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "o", "oui":
		return true
	default:
		return false
	}
}
