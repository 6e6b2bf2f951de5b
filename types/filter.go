package types

import (
	"fmt"
	"strings"
)

// FilterType selects the partition a view is subscribed to
type FilterType int

const (
	FilterNone FilterType = iota
	FilterAll
	FilterFavorites
	FilterOnline
	FilterByID
)

// FilterTypes lists every partition kept by a store, in a fixed order
var FilterTypes = []FilterType{FilterAll, FilterFavorites, FilterOnline, FilterByID}

var filterTypeNames = map[FilterType]string{
	FilterNone:      "none",
	FilterAll:       "all",
	FilterFavorites: "favorites",
	FilterOnline:    "online",
	FilterByID:      "by-id",
}

func (t FilterType) String() string {
	if name, ok := filterTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FilterType(%d)", int(t))
}

// ParseFilterType parses the names produced by String
func ParseFilterType(s string) (FilterType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range filterTypeNames {
		if name == s {
			return t, nil
		}
	}
	return FilterNone, fmt.Errorf("unknown filter type %q", s)
}

// Includes reports whether a contact belongs to the partition
func (t FilterType) Includes(c *Contact) bool {
	switch t {
	case FilterAll, FilterByID:
		return true
	case FilterFavorites:
		return c.Favorite
	case FilterOnline:
		return c.Presence.IsOnline()
	}
	return false
}

// RequiredProperty is a bitmask of contact detail categories a view requires
type RequiredProperty int

const (
	NoPropertyRequired   RequiredProperty = 0
	PhoneNumberRequired  RequiredProperty = 1 << 0
	EmailAddressRequired RequiredProperty = 1 << 1
	AccountURIRequired   RequiredProperty = 1 << 2
)

var requiredPropertyNames = []struct {
	flag RequiredProperty
	name string
}{
	{PhoneNumberRequired, "phone"},
	{EmailAddressRequired, "email"},
	{AccountURIRequired, "account"},
}

func (p RequiredProperty) String() string {
	if p == NoPropertyRequired {
		return "none"
	}
	var names []string
	for _, rp := range requiredPropertyNames {
		if p&rp.flag != 0 {
			names = append(names, rp.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseRequiredProperty parses a comma separated list such as "phone,email"
func ParseRequiredProperty(s string) (RequiredProperty, error) {
	var mask RequiredProperty
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || part == "none" {
			continue
		}
		found := false
		for _, rp := range requiredPropertyNames {
			if rp.name == part {
				mask |= rp.flag
				found = true
				break
			}
		}
		if !found {
			return NoPropertyRequired, fmt.Errorf("unknown required property %q", part)
		}
	}
	return mask, nil
}

// FilterState is the full set of criteria deciding view membership
type FilterState struct {
	Type                       FilterType       `yaml:"type" json:"type"`
	Pattern                    string           `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	RequiredProperty           RequiredProperty `yaml:"required_property,omitempty" json:"required_property,omitempty"`
	SearchByFirstNameCharacter bool             `yaml:"search_by_first_name_character,omitempty" json:"search_by_first_name_character,omitempty"`
}

// DefaultFilterState lists every contact
func DefaultFilterState() FilterState {
	return FilterState{Type: FilterAll}
}

// MarshalText implements encoding.TextMarshaler
func (t FilterType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *FilterType) UnmarshalText(text []byte) error {
	parsed, err := ParseFilterType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (p RequiredProperty) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *RequiredProperty) UnmarshalText(text []byte) error {
	parsed, err := ParseRequiredProperty(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
