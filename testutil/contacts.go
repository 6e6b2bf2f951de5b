// Package testutil holds the contact fixture shared by the test suites.
package testutil

import (
	"github.com/arthur-debert/contactview/types"
)

// Fixture indices into Contacts. A store filled with Contacts in this order
// assigns RecordID(i+1) to Contacts()[i].
const (
	AaronAaronson = iota // phone, email .com
	AaronArthur          // email .com, online
	AaronJohns           // email .com, favorite
	ArthurJohns          // phone, email .org
	JayAaronson          // phone, email examplez.org, online
	JoeJohns             // email examplez.org, favorite, online, avatar
	RobinBurchell        // phone, favorite

	ContactCount
)

// Contacts returns a fresh copy of the seven fixture contacts, already in
// display label order.
func Contacts() []types.Contact {
	return []types.Contact{
		{
			FirstName:      "Aaron",
			LastName:       "Aaronson",
			PhoneNumbers:   []string{"1234567"},
			EmailAddresses: []string{"aaron.aaronson@example.com"},
		},
		{
			FirstName:      "Aaron",
			LastName:       "Arthur",
			EmailAddresses: []string{"aaron.arthur@example.com"},
			Presence:       types.PresenceAvailable,
		},
		{
			FirstName:      "Aaron",
			LastName:       "Johns",
			EmailAddresses: []string{"aaron.johns@example.com"},
			Favorite:       true,
		},
		{
			FirstName:      "Arthur",
			LastName:       "Johns",
			PhoneNumbers:   []string{"2345678"},
			EmailAddresses: []string{"arthur.johns@example.org"},
			Presence:       types.PresenceOffline,
		},
		{
			FirstName:      "Jay",
			LastName:       "Aaronson",
			PhoneNumbers:   []string{"3456789"},
			EmailAddresses: []string{"jay@examplez.org"},
			Presence:       types.PresenceBusy,
		},
		{
			FirstName:      "Joe",
			LastName:       "Johns",
			EmailAddresses: []string{"joe@examplez.org"},
			Favorite:       true,
			Presence:       types.PresenceAvailable,
			Avatar:         "file:///cache/joe.jpg",
		},
		{
			FirstName:    "Robin",
			LastName:     "Burchell",
			PhoneNumbers: []string{"4567890"},
			Favorite:     true,
		},
	}
}

// ID returns the RecordID a fresh store assigns to fixture contact i
func ID(i int) types.RecordID {
	return types.RecordID(i + 1)
}

// IDs maps fixture indices to record ids
func IDs(indices ...int) []types.RecordID {
	ids := make([]types.RecordID, 0, len(indices))
	for _, i := range indices {
		ids = append(ids, ID(i))
	}
	return ids
}

// Contact returns fixture contact i with its id filled in
func Contact(i int) types.Contact {
	c := Contacts()[i]
	c.ID = ID(i)
	return c
}
