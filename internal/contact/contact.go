// Package contact defines the phone book entry type.
package contact

import (
	"fmt"
	"strings"
)

// Contact is a single phone book entry. Contacts are values: they are never
// edited in place, and two contacts with the same three fields are equal.
type Contact struct {
	LastName    string `json:"lastName"`
	FirstName   string `json:"firstName"`
	PhoneNumber string `json:"phoneNumber"`
}

// New builds a contact from its three fields. No validation is applied.
func New(lastName, firstName, phoneNumber string) Contact {
	return Contact{
		LastName:    lastName,
		FirstName:   firstName,
		PhoneNumber: phoneNumber,
	}
}

// Equal reports whether both contacts carry identical fields.
func (c Contact) Equal(other Contact) bool {
	return c == other
}

// Matches reports whether query is a case-insensitive substring of either the
// last name or the first name. An empty query matches every contact.
func (c Contact) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.LastName), q) ||
		strings.Contains(strings.ToLower(c.FirstName), q)
}

// String renders the contact as "Last First - Phone".
func (c Contact) String() string {
	return fmt.Sprintf("%s %s - %s", c.LastName, c.FirstName, c.PhoneNumber)
}

// Filter returns the contacts matching query, in their original order.
// The result is never nil.
func Filter(contacts []Contact, query string) []Contact {
	matches := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}
	return matches
}

// FormatNumbered renders contacts as a 1-based numbered list, one per line.
func FormatNumbered(contacts []Contact) string {
	var sb strings.Builder
	for i, c := range contacts {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c))
	}
	return sb.String()
}
