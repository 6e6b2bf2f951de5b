// Package matching decides whether a contact belongs to a filtered view.
package matching

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/arthur-debert/contactview/types"
)

// Filter is a compiled FilterState.
// A Filter is not safe for concurrent use.
type Filter struct {
	state types.FilterState
	fold  cases.Caser

	// whitespace separated pattern tokens, folded
	nameTokens []string
	// pattern tokens also split at address separators, folded
	addressTokens []string

	// first rune of the folded pattern in first-letter mode, 0 otherwise
	initial rune
}

// Compile prepares a filter state for repeated evaluation
func Compile(state types.FilterState) *Filter {
	f := &Filter{
		state: state,
		fold:  cases.Fold(),
	}

	pattern := f.fold.String(strings.TrimSpace(state.Pattern))
	if pattern == "" {
		return f
	}

	if state.SearchByFirstNameCharacter {
		f.initial, _ = utf8.DecodeRuneInString(pattern)
		return f
	}

	f.nameTokens = strings.Fields(pattern)
	f.addressTokens = strings.FieldsFunc(pattern, isAddressSeparator)
	if len(f.addressTokens) == 0 {
		// Nothing but separators: behave like an empty pattern
		f.nameTokens = nil
	}
	return f
}

// State returns the filter state the filter was compiled from
func (f *Filter) State() types.FilterState {
	return f.state
}

// Matches checks partition membership, required properties and the pattern
func (f *Filter) Matches(c *types.Contact) bool {
	if c == nil {
		return false
	}
	return f.Includes(c) && f.hasRequiredProperty(c) && f.matchesPattern(c)
}

// Includes checks partition membership only
func (f *Filter) Includes(c *types.Contact) bool {
	return f.state.Type.Includes(c)
}

// MatchesAll reports whether the filter accepts every member of its partition
func (f *Filter) MatchesAll() bool {
	return f.state.RequiredProperty == types.NoPropertyRequired &&
		f.initial == 0 && len(f.nameTokens) == 0
}

// hasRequiredProperty accepts a contact owning a value in any flagged category
func (f *Filter) hasRequiredProperty(c *types.Contact) bool {
	required := f.state.RequiredProperty
	if required == types.NoPropertyRequired {
		return true
	}

	if required&types.PhoneNumberRequired != 0 && hasValue(c.PhoneNumbers) {
		return true
	}
	if required&types.EmailAddressRequired != 0 && hasValue(c.EmailAddresses) {
		return true
	}
	if required&types.AccountURIRequired != 0 && hasValue(c.AccountURIs) {
		return true
	}
	return false
}

func (f *Filter) matchesPattern(c *types.Contact) bool {
	if f.state.SearchByFirstNameCharacter {
		return f.matchesInitial(c)
	}
	if len(f.nameTokens) == 0 {
		return true
	}

	var names []string
	for _, name := range []string{c.FirstName, c.LastName} {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, f.fold.String(name))
		}
	}
	if assignTokens(f.nameTokens, names) {
		return true
	}

	for _, address := range c.EmailAddresses {
		segments := strings.FieldsFunc(f.fold.String(address), isAddressSeparator)
		if assignTokens(f.addressTokens, segments) {
			return true
		}
	}
	return false
}

func (f *Filter) matchesInitial(c *types.Contact) bool {
	if f.initial == 0 {
		return true
	}

	first := f.fold.String(strings.TrimSpace(c.FirstName))
	r, _ := utf8.DecodeRuneInString(first)
	if unicode.IsLetter(f.initial) {
		return r == f.initial
	}
	// Any non-letter pattern selects the names not starting with a letter
	return first == "" || !unicode.IsLetter(r)
}

// assignTokens reports whether every token can be matched as a prefix of a
// distinct field. Tokens are not bound to field positions.
func assignTokens(tokens, fields []string) bool {
	if len(tokens) > len(fields) {
		return false
	}

	used := make([]bool, len(fields))
	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(tokens) {
			return true
		}
		for j, field := range fields {
			if used[j] || !strings.HasPrefix(field, tokens[i]) {
				continue
			}
			used[j] = true
			if assign(i + 1) {
				return true
			}
			used[j] = false
		}
		return false
	}
	return assign(0)
}

func isAddressSeparator(r rune) bool {
	return r == '@' || r == '.' || unicode.IsSpace(r)
}

func hasValue(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Fold returns the case-folded form used for all comparisons
func Fold(s string) string {
	return cases.Fold().String(s)
}
