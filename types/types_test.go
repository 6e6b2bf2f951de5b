package types

import (
	"testing"
)

func TestParseFilterType(t *testing.T) {
	for _, ft := range []FilterType{FilterNone, FilterAll, FilterFavorites, FilterOnline, FilterByID} {
		got, err := ParseFilterType(ft.String())
		if err != nil {
			t.Fatalf("ParseFilterType(%q) failed: %v", ft, err)
		}
		if got != ft {
			t.Errorf("ParseFilterType(%q) = %v", ft, got)
		}
	}

	if got, err := ParseFilterType("  Favorites "); err != nil || got != FilterFavorites {
		t.Errorf("Expected case and space insensitive parsing, got %v, %v", got, err)
	}
	if _, err := ParseFilterType("friends"); err == nil {
		t.Error("Expected an error for an unknown filter type")
	}
}

func TestFilterTypeIncludes(t *testing.T) {
	plain := &Contact{FirstName: "Ann"}
	favorite := &Contact{FirstName: "Ann", Favorite: true}
	busy := &Contact{FirstName: "Ann", Presence: PresenceBusy}
	hidden := &Contact{FirstName: "Ann", Presence: PresenceHidden}

	tests := []struct {
		filter  FilterType
		contact *Contact
		want    bool
	}{
		{FilterNone, favorite, false},
		{FilterAll, plain, true},
		{FilterByID, plain, true},
		{FilterFavorites, plain, false},
		{FilterFavorites, favorite, true},
		{FilterOnline, busy, true},
		{FilterOnline, hidden, false},
		{FilterOnline, plain, false},
	}
	for _, tt := range tests {
		if got := tt.filter.Includes(tt.contact); got != tt.want {
			t.Errorf("%s.Includes(%+v) = %t, want %t", tt.filter, *tt.contact, got, tt.want)
		}
	}
}

func TestParseRequiredProperty(t *testing.T) {
	tests := []struct {
		input   string
		want    RequiredProperty
		wantErr bool
	}{
		{"", NoPropertyRequired, false},
		{"none", NoPropertyRequired, false},
		{"phone", PhoneNumberRequired, false},
		{"Email, phone", PhoneNumberRequired | EmailAddressRequired, false},
		{"phone,email,account", PhoneNumberRequired | EmailAddressRequired | AccountURIRequired, false},
		{"fax", NoPropertyRequired, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRequiredProperty(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRequiredProperty(%q) error = %v, wantErr %t", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRequiredProperty(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	mask := PhoneNumberRequired | AccountURIRequired
	if mask.String() != "phone,account" {
		t.Errorf("Unexpected mask name %q", mask.String())
	}
	if NoPropertyRequired.String() != "none" {
		t.Errorf("Unexpected empty mask name %q", NoPropertyRequired.String())
	}
}

func TestPresence(t *testing.T) {
	online := map[Presence]bool{
		PresenceUnknown:      false,
		PresenceAvailable:    true,
		PresenceHidden:       false,
		PresenceBusy:         true,
		PresenceAway:         true,
		PresenceExtendedAway: true,
		PresenceOffline:      false,
	}
	for p, want := range online {
		if p.IsOnline() != want {
			t.Errorf("%s.IsOnline() = %t, want %t", p, p.IsOnline(), want)
		}

		var parsed Presence
		if err := parsed.UnmarshalText([]byte(p.String())); err != nil || parsed != p {
			t.Errorf("UnmarshalText(%q) = %v, %v", p, parsed, err)
		}
	}

	var p Presence = PresenceBusy
	if err := p.UnmarshalText([]byte("asleep")); err != nil || p != PresenceUnknown {
		t.Errorf("Expected unknown names to map to unknown presence, got %v, %v", p, err)
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		order   DisplayLabelOrder
		want    string
	}{
		{"first last", Contact{FirstName: "Robin", LastName: "Burchell"}, FirstNameFirst, "Robin Burchell"},
		{"last first", Contact{FirstName: "Robin", LastName: "Burchell"}, LastNameFirst, "Burchell Robin"},
		{"first only", Contact{FirstName: " Robin "}, LastNameFirst, "Robin"},
		{"last only", Contact{LastName: "Burchell"}, FirstNameFirst, "Burchell"},
		{"email fallback", Contact{EmailAddresses: []string{"r@example.com"}, PhoneNumbers: []string{"123"}}, FirstNameFirst, "r@example.com"},
		{"phone fallback", Contact{EmailAddresses: []string{" "}, PhoneNumbers: []string{"123"}}, FirstNameFirst, "123"},
		{"account fallback", Contact{AccountURIs: []string{"xmpp:r@example.com"}}, FirstNameFirst, "xmpp:r@example.com"},
		{"nothing", Contact{}, FirstNameFirst, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayLabel(&tt.contact, tt.order); got != tt.want {
				t.Errorf("DisplayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContactClone(t *testing.T) {
	c := Contact{FirstName: "Ann", PhoneNumbers: []string{"1"}}
	clone := c.Clone()
	clone.PhoneNumbers[0] = "2"
	if c.PhoneNumbers[0] != "1" {
		t.Error("Clone shares the phone number slice")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Kind: RangeInserted, Start: 2, Count: 3}, "inserted [2,4]"},
		{Event{Kind: RangeRemoved, Start: 0, Count: 1}, "removed [0,0]"},
		{Event{Kind: RowChanged, Start: 5}, "changed [5]"},
		{Event{Kind: PopulatedChanged}, "populated-changed"},
	}
	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	if !RowChanged.IsRowEvent() || FilterTypeChanged.IsRowEvent() {
		t.Error("Unexpected IsRowEvent classification")
	}
}
