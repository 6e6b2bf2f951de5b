package matching

import (
	"testing"

	"github.com/arthur-debert/contactview/testutil"
	"github.com/arthur-debert/contactview/types"
)

// matchingIndices returns the fixture indices accepted by the filter
func matchingIndices(f *Filter) []int {
	var result []int
	for i, c := range testutil.Contacts() {
		c := c
		if f.Matches(&c) {
			result = append(result, i)
		}
	}
	return result
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterPattern(t *testing.T) {
	tests := []struct {
		name    string
		state   types.FilterState
		matches []int
	}{
		{"empty pattern", types.FilterState{Type: types.FilterAll}, []int{0, 1, 2, 3, 4, 5, 6}},
		{"whitespace only", types.FilterState{Type: types.FilterAll, Pattern: "   "}, []int{0, 1, 2, 3, 4, 5, 6}},
		{"single letter", types.FilterState{Type: types.FilterAll, Pattern: "a"}, []int{0, 1, 2, 3, 4}},
		{"case insensitive", types.FilterState{Type: types.FilterAll, Pattern: "aA"}, []int{0, 1, 2, 4}},
		{"last name prefix", types.FilterState{Type: types.FilterAll, Pattern: "aaronso"}, []int{0, 4}},
		{"first or last", types.FilterState{Type: types.FilterAll, Pattern: "Jo"}, []int{2, 3, 5}},
		{"favorites only", types.FilterState{Type: types.FilterFavorites, Pattern: "Aa"}, []int{2}},
		{"none selector", types.FilterState{Type: types.FilterNone, Pattern: "J"}, nil},
		{"separators only", types.FilterState{Type: types.FilterAll, Pattern: ".@"}, []int{0, 1, 2, 3, 4, 5, 6}},
		{"email domain", types.FilterState{Type: types.FilterAll, Pattern: "example"}, []int{0, 1, 2, 3, 4, 5}},
		{"email trailing dot", types.FilterState{Type: types.FilterAll, Pattern: "example."}, []int{0, 1, 2, 3, 4, 5}},
		{"email com", types.FilterState{Type: types.FilterAll, Pattern: "example.com"}, []int{0, 1, 2}},
		{"email org", types.FilterState{Type: types.FilterAll, Pattern: "example.org"}, []int{3, 4, 5}},
		{"email examplez", types.FilterState{Type: types.FilterAll, Pattern: "examplez.org"}, []int{4, 5}},
		{"full address", types.FilterState{Type: types.FilterAll, Pattern: "jay@examplez.org"}, []int{4}},
		{"online partition", types.FilterState{Type: types.FilterOnline}, []int{1, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchingIndices(Compile(tt.state))
			if !equalInts(got, tt.matches) {
				t.Errorf("Expected %v, got %v", tt.matches, got)
			}
		})
	}
}

func TestFilterTokenAssignment(t *testing.T) {
	robin := testutil.Contact(testutil.RobinBurchell)

	matching := []string{
		"R", "Ro", "Rob", "Robi", "Robin",
		"B", "Bu", "Bur", "Burc", "Burch", "Burche", "Burchel", "Burchell",
		"Robin ", "Robin B", "Robin Bu", "Robin Burchell",
		"R B", "R Bu", "Burchell Robin", "  robin   burchell ",
	}
	for _, pattern := range matching {
		f := Compile(types.FilterState{Type: types.FilterAll, Pattern: pattern})
		if !f.Matches(&robin) {
			t.Errorf("Expected %q to match Robin Burchell", pattern)
		}
	}

	rejected := []string{"Robert", "Robin Brooks", "John Burchell", "Brooks", "R R", "Robin Burchell X"}
	for _, pattern := range rejected {
		f := Compile(types.FilterState{Type: types.FilterAll, Pattern: pattern})
		if f.Matches(&robin) {
			t.Errorf("Expected %q not to match Robin Burchell", pattern)
		}
	}
}

func TestFilterFirstNameCharacter(t *testing.T) {
	tests := []struct {
		pattern string
		matches []int
	}{
		{"R", []int{6}},
		{"A", []int{0, 1, 2, 3}},
		{"r", []int{6}},
		{"aaron", []int{0, 1, 2, 3}},
		{"#", nil},
		{"", []int{0, 1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f := Compile(types.FilterState{
				Type:                       types.FilterAll,
				Pattern:                    tt.pattern,
				SearchByFirstNameCharacter: true,
			})
			got := matchingIndices(f)
			if !equalInts(got, tt.matches) {
				t.Errorf("Expected %v, got %v", tt.matches, got)
			}
		})
	}

	t.Run("non-letter first names", func(t *testing.T) {
		f := Compile(types.FilterState{Type: types.FilterAll, Pattern: "#", SearchByFirstNameCharacter: true})
		for _, name := range []string{"123", "", "#hash", "_x"} {
			c := types.Contact{FirstName: name}
			if !f.Matches(&c) {
				t.Errorf("Expected first name %q to match non-letter pattern", name)
			}
		}
		c := types.Contact{FirstName: "Élodie"}
		if f.Matches(&c) {
			t.Error("Expected accented letter not to match non-letter pattern")
		}
	})
}

func TestFilterRequiredProperty(t *testing.T) {
	tests := []struct {
		name     string
		required types.RequiredProperty
		matches  []int
	}{
		{"none", types.NoPropertyRequired, []int{0, 1, 2, 3, 4, 5, 6}},
		{"phone", types.PhoneNumberRequired, []int{0, 3, 4, 6}},
		{"email", types.EmailAddressRequired, []int{0, 1, 2, 3, 4, 5}},
		{"phone or email", types.PhoneNumberRequired | types.EmailAddressRequired, []int{0, 1, 2, 3, 4, 5, 6}},
		{"account", types.AccountURIRequired, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchingIndices(Compile(types.FilterState{Type: types.FilterAll, RequiredProperty: tt.required}))
			if !equalInts(got, tt.matches) {
				t.Errorf("Expected %v, got %v", tt.matches, got)
			}
		})
	}

	t.Run("blank values do not count", func(t *testing.T) {
		c := types.Contact{FirstName: "Blank", PhoneNumbers: []string{"  "}}
		f := Compile(types.FilterState{Type: types.FilterAll, RequiredProperty: types.PhoneNumberRequired})
		if f.Matches(&c) {
			t.Error("Expected blank phone number not to satisfy the requirement")
		}
	})
}

func TestFilterMatchesAll(t *testing.T) {
	if !Compile(types.FilterState{Type: types.FilterAll, Pattern: " "}).MatchesAll() {
		t.Error("Expected blank pattern to match all")
	}
	if Compile(types.FilterState{Type: types.FilterAll, Pattern: "a"}).MatchesAll() {
		t.Error("Expected pattern to restrict matches")
	}
	if Compile(types.FilterState{Type: types.FilterAll, RequiredProperty: types.PhoneNumberRequired}).MatchesAll() {
		t.Error("Expected required property to restrict matches")
	}
}

func TestFilterNilContact(t *testing.T) {
	if Compile(types.DefaultFilterState()).Matches(nil) {
		t.Error("Expected nil contact not to match")
	}
}
