package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/contactview/types"
)

// joinValues renders a multi-valued attribute in one cell
func joinValues(values []string) string {
	return strings.Join(values, ", ")
}

func favoriteMark(favorite bool) string {
	if favorite {
		return "*"
	}
	return ""
}

// eventIDs renders the ids carried by an event
func eventIDs(e types.Event) string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, " ")
}

// rowCells returns the cells shared by the tabular formats
func rowCells(r Row) []string {
	return []string{
		strconv.Itoa(r.Row),
		strconv.FormatUint(uint64(r.ID), 10),
		r.Section,
		r.Label,
		joinValues(r.PhoneNumbers),
		joinValues(r.EmailAddresses),
		favoriteMark(r.Favorite),
		r.Presence.String(),
	}
}

var rowHeaders = []string{"ROW", "ID", "SECTION", "LABEL", "PHONE", "EMAIL", "FAV", "PRESENCE"}

// describeState renders a filter state on one line
func describeState(s types.FilterState) string {
	return fmt.Sprintf("type=%s pattern=%q require=%s first-letter=%t",
		s.Type, s.Pattern, s.RequiredProperty, s.SearchByFirstNameCharacter)
}
