package types

import "strings"

// RecordID is the stable identifier of a contact record.
// Zero is never assigned and means "no record".
type RecordID uint32

// Presence is the aggregated presence state of a contact
type Presence int

const (
	PresenceUnknown Presence = iota
	PresenceAvailable
	PresenceHidden
	PresenceBusy
	PresenceAway
	PresenceExtendedAway
	PresenceOffline
)

// IsOnline reports whether the contact is reachable right now
func (p Presence) IsOnline() bool {
	switch p {
	case PresenceAvailable, PresenceBusy, PresenceAway, PresenceExtendedAway:
		return true
	}
	return false
}

var presenceNames = map[Presence]string{
	PresenceUnknown:      "unknown",
	PresenceAvailable:    "available",
	PresenceHidden:       "hidden",
	PresenceBusy:         "busy",
	PresenceAway:         "away",
	PresenceExtendedAway: "extended-away",
	PresenceOffline:      "offline",
}

func (p Presence) String() string {
	if name, ok := presenceNames[p]; ok {
		return name
	}
	return "unknown"
}

// UnmarshalText accepts the names produced by String
func (p *Presence) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for presence, name := range presenceNames {
		if name == s {
			*p = presence
			return nil
		}
	}
	*p = PresenceUnknown
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (p Presence) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Contact is a single record of the address book.
// The ID is owned by the store; every other field may change in place.
type Contact struct {
	ID             RecordID `yaml:"id,omitempty" json:"id"`
	FirstName      string   `yaml:"first_name,omitempty" json:"first_name,omitempty"`
	LastName       string   `yaml:"last_name,omitempty" json:"last_name,omitempty"`
	PhoneNumbers   []string `yaml:"phone_numbers,omitempty" json:"phone_numbers,omitempty"`
	EmailAddresses []string `yaml:"email_addresses,omitempty" json:"email_addresses,omitempty"`
	AccountURIs    []string `yaml:"account_uris,omitempty" json:"account_uris,omitempty"`
	Favorite       bool     `yaml:"favorite,omitempty" json:"favorite,omitempty"`
	Presence       Presence `yaml:"presence,omitempty" json:"presence,omitempty"`
	Avatar         string   `yaml:"avatar,omitempty" json:"avatar,omitempty"`
}

// Clone returns a deep copy so callers can mutate it without touching the store
func (c Contact) Clone() Contact {
	c.PhoneNumbers = append([]string(nil), c.PhoneNumbers...)
	c.EmailAddresses = append([]string(nil), c.EmailAddresses...)
	c.AccountURIs = append([]string(nil), c.AccountURIs...)
	return c
}

// DisplayLabelOrder selects which name component leads the display label
type DisplayLabelOrder int

const (
	FirstNameFirst DisplayLabelOrder = iota
	LastNameFirst
)

// DisplayLabel builds the label shown for a contact.
// When both name components are empty the first email address, phone number
// or account URI is used instead.
func DisplayLabel(c *Contact, order DisplayLabelOrder) string {
	first := strings.TrimSpace(c.FirstName)
	last := strings.TrimSpace(c.LastName)

	var parts []string
	if order == LastNameFirst {
		parts = []string{last, first}
	} else {
		parts = []string{first, last}
	}

	var label []string
	for _, p := range parts {
		if p != "" {
			label = append(label, p)
		}
	}
	if len(label) > 0 {
		return strings.Join(label, " ")
	}

	for _, values := range [][]string{c.EmailAddresses, c.PhoneNumbers, c.AccountURIs} {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
