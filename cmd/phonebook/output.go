package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/matsen/phonebook/internal/contact"
	"github.com/mattn/go-isatty"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "208", Dark: "208"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
)

// isTTY reports whether f is connected to a terminal.
func isTTY(f any) bool {
	file, ok := f.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// painter applies lipgloss styles only when writing to a terminal.
type painter struct {
	enabled bool
}

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	return style.Render(s)
}

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintln(os.Stderr, painter{enabled: isTTY(os.Stderr)}.paint(errorStyle, "error: "+msg))
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ContactResponse is the JSON form of a contact with its display number.
type ContactResponse struct {
	Number      int    `json:"number"`
	LastName    string `json:"lastName"`
	FirstName   string `json:"firstName"`
	PhoneNumber string `json:"phoneNumber"`
}

func contactResponses(contacts []contact.Contact) []ContactResponse {
	out := make([]ContactResponse, len(contacts))
	for i, c := range contacts {
		out[i] = ContactResponse{
			Number:      i + 1,
			LastName:    c.LastName,
			FirstName:   c.FirstName,
			PhoneNumber: c.PhoneNumber,
		}
	}
	return out
}

// printContacts writes the numbered contact list framed by a header and
// footer, or an empty-list notice.
func printContacts(w io.Writer, p painter, header string, contacts []contact.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(w, "The contact list is empty!")
		return
	}
	fmt.Fprintln(w, p.paint(headerStyle, header))
	fmt.Fprint(w, contact.FormatNumbered(contacts))
	fmt.Fprintln(w, "------------------END--------------------")
}
