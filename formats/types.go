// Package formats renders view rows and view events for the command line.
package formats

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/contactview/person"
	"github.com/arthur-debert/contactview/types"
)

// Row is one rendered view row
type Row struct {
	Row            int            `json:"row" yaml:"row"`
	ID             types.RecordID `json:"id" yaml:"id"`
	Label          string         `json:"label" yaml:"label"`
	Section        string         `json:"section" yaml:"section"`
	PhoneNumbers   []string       `json:"phone_numbers,omitempty" yaml:"phone_numbers,omitempty"`
	EmailAddresses []string       `json:"email_addresses,omitempty" yaml:"email_addresses,omitempty"`
	Favorite       bool           `json:"favorite,omitempty" yaml:"favorite,omitempty"`
	Presence       types.Presence `json:"presence" yaml:"presence"`
}

// NewRow captures the attributes of a person shown at a row
func NewRow(row int, p *person.Person) Row {
	return Row{
		Row:            row,
		ID:             p.ID(),
		Label:          p.DisplayLabel(),
		Section:        p.SectionBucket(),
		PhoneNumbers:   p.PhoneNumbers(),
		EmailAddresses: p.EmailAddresses(),
		Favorite:       p.Favorite(),
		Presence:       p.Presence(),
	}
}

// Step groups the events emitted by one replayed filter change
type Step struct {
	Step   int               `json:"step" yaml:"step"`
	State  types.FilterState `json:"state" yaml:"state"`
	Events []types.Event     `json:"events" yaml:"events"`
	Rows   int               `json:"rows" yaml:"rows"`
}

// Format renders rows and replay steps
type Format struct {
	// Name is the format identifier (lowercase alphanumeric, dashes, underscores)
	Name string

	Rows  func(w io.Writer, rows []Row) error
	Steps func(w io.Writer, steps []Step) error
}

// registry holds all available formats
var registry = make(map[string]*Format)

// Register adds a new format to the registry
func Register(format *Format) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if format.Rows == nil || format.Steps == nil {
		return fmt.Errorf("format %q must render both rows and steps", format.Name)
	}
	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a format by name
func Get(name string) (*Format, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, List())
	}
	return format, nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

func mustRegister(format *Format) {
	if err := Register(format); err != nil {
		panic(fmt.Sprintf("failed to register %s format: %v", format.Name, err))
	}
}
