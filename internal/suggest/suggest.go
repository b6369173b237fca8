// Package suggest produces follow-up prompt suggestions for the chat UI.
package suggest

import (
	"github.com/eldercare-labs/carebridge/internal/persona"
)

// Source answers suggestion lookups from the persona tables. Lookups are
// pure: no side effects, no failure modes.
type Source struct {
	tables *persona.Tables
}

// New creates a suggestion source over the given tables.
func New(tables *persona.Tables) *Source {
	return &Source{tables: tables}
}

// For returns the suggestion list for a (userType, intent) pair. An
// intent without an entry falls back to the user type's general_inquiry
// list; an unrecognized user type returns an empty list.
func (s *Source) For(userType, intent string) []string {
	return s.tables.SuggestionsFor(userType, intent)
}
