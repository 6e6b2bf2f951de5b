package store

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/contactview/internal/matching"
	"github.com/arthur-debert/contactview/types"
)

// ResolvePhoneNumber finds the first record, in id order, owning a phone
// number with the same digits
func (s *Store) ResolvePhoneNumber(number string) (types.RecordID, bool) {
	want := digits(number)
	if want == "" {
		return 0, false
	}
	return s.resolve(func(c *types.Contact) []string { return c.PhoneNumbers }, func(v string) bool {
		return digits(v) == want
	})
}

// ResolveEmailAddress finds the first record, in id order, owning the
// address. Comparison is case-insensitive.
func (s *Store) ResolveEmailAddress(address string) (types.RecordID, bool) {
	want := matching.Fold(strings.TrimSpace(address))
	if want == "" {
		return 0, false
	}
	return s.resolve(func(c *types.Contact) []string { return c.EmailAddresses }, func(v string) bool {
		return matching.Fold(strings.TrimSpace(v)) == want
	})
}

// ResolveAccountURI finds the first record, in id order, owning the account
func (s *Store) ResolveAccountURI(uri string) (types.RecordID, bool) {
	want := strings.TrimSpace(uri)
	if want == "" {
		return 0, false
	}
	return s.resolve(func(c *types.Contact) []string { return c.AccountURIs }, func(v string) bool {
		return strings.TrimSpace(v) == want
	})
}

func (s *Store) resolve(values func(*types.Contact) []string, match func(string) bool) (types.RecordID, bool) {
	for _, id := range s.Records(types.FilterByID) {
		for _, v := range values(s.records[id]) {
			if match(v) {
				return id, true
			}
		}
	}
	return 0, false
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
