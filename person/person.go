// Package person exposes one contact record as a self-contained object.
//
// A Person is assembled from three independent capabilities: a RecordSource
// for its attributes, an AddressResolver to bind it to the record owning a
// phone number or address, and a ChangeNotifier to learn when that record
// changes. *store.Store provides all three.
package person

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthur-debert/contactview/types"
)

// DefaultAvatar is shown for records without an avatar of their own
const DefaultAvatar = "image://theme/icon-m-telephony-contact-avatar"

// RecordSource provides the attributes of records
type RecordSource interface {
	Record(id types.RecordID) (*types.Contact, bool)
	DisplayLabel(id types.RecordID) string
}

// AddressResolver finds the record owning an address
type AddressResolver interface {
	ResolvePhoneNumber(number string) (types.RecordID, bool)
	ResolveEmailAddress(address string) (types.RecordID, bool)
	ResolveAccountURI(uri string) (types.RecordID, bool)
}

// ChangeNotifier delivers partition change messages
type ChangeNotifier interface {
	Subscribe(t types.FilterType, l types.Listener) uuid.UUID
	Unsubscribe(handle uuid.UUID)
}

// Backend bundles the three capabilities
type Backend interface {
	RecordSource
	AddressResolver
	ChangeNotifier
}

// Person is a handle on one record. The zero RecordID means the person is
// not bound to a record yet.
type Person struct {
	id       types.RecordID
	source   RecordSource
	resolver AddressResolver
	notifier ChangeNotifier

	// set once the bound record's removal has been reported
	removed bool

	handle    uuid.UUID
	listening bool
	onChange  []func()
}

// New creates an unbound person. Bind it with one of the Resolve methods.
func New(source RecordSource, resolver AddressResolver, notifier ChangeNotifier) *Person {
	return &Person{source: source, resolver: resolver, notifier: notifier}
}

// Lookup returns the person for a live record, or nil
func Lookup(b Backend, id types.RecordID) *Person {
	if _, ok := b.Record(id); !ok {
		return nil
	}
	p := New(b, b, b)
	p.id = id
	return p
}

// ID returns the bound record id, zero when unbound
func (p *Person) ID() types.RecordID {
	return p.id
}

func (p *Person) contact() *types.Contact {
	if p.id == 0 || p.removed {
		return nil
	}
	c, ok := p.source.Record(p.id)
	if !ok {
		return nil
	}
	return c
}

// Exists reports whether the bound record is still live
func (p *Person) Exists() bool {
	return p.contact() != nil
}

func (p *Person) FirstName() string {
	if c := p.contact(); c != nil {
		return c.FirstName
	}
	return ""
}

func (p *Person) LastName() string {
	if c := p.contact(); c != nil {
		return c.LastName
	}
	return ""
}

// DisplayLabel returns the label under the store's current label order
func (p *Person) DisplayLabel() string {
	if p.id == 0 || p.removed {
		return ""
	}
	return p.source.DisplayLabel(p.id)
}

// SectionBucket returns the upper-cased first letter of the display label,
// "#" when the label starts with anything else
func (p *Person) SectionBucket() string {
	label := p.DisplayLabel()
	if label == "" {
		return ""
	}

	r, _ := utf8.DecodeRuneInString(label)
	if !unicode.IsLetter(r) {
		return "#"
	}
	return cases.Upper(language.Und).String(string(r))
}

// Avatar returns the avatar URL, or DefaultAvatar
func (p *Person) Avatar() string {
	if c := p.contact(); c != nil && c.Avatar != "" {
		return c.Avatar
	}
	return DefaultAvatar
}

func (p *Person) PhoneNumbers() []string {
	if c := p.contact(); c != nil {
		return slices.Clone(c.PhoneNumbers)
	}
	return nil
}

func (p *Person) EmailAddresses() []string {
	if c := p.contact(); c != nil {
		return slices.Clone(c.EmailAddresses)
	}
	return nil
}

func (p *Person) AccountURIs() []string {
	if c := p.contact(); c != nil {
		return slices.Clone(c.AccountURIs)
	}
	return nil
}

func (p *Person) Favorite() bool {
	c := p.contact()
	return c != nil && c.Favorite
}

func (p *Person) Presence() types.Presence {
	if c := p.contact(); c != nil {
		return c.Presence
	}
	return types.PresenceUnknown
}

// ResolvePhoneNumber binds the person to the record owning number
func (p *Person) ResolvePhoneNumber(number string) bool {
	return p.bind(p.resolver.ResolvePhoneNumber(number))
}

// ResolveEmailAddress binds the person to the record owning address
func (p *Person) ResolveEmailAddress(address string) bool {
	return p.bind(p.resolver.ResolveEmailAddress(address))
}

// ResolveAccountURI binds the person to the record owning uri
func (p *Person) ResolveAccountURI(uri string) bool {
	return p.bind(p.resolver.ResolveAccountURI(uri))
}

func (p *Person) bind(id types.RecordID, ok bool) bool {
	if !ok {
		return false
	}
	if id != p.id {
		p.id = id
		p.removed = false
		p.changed()
	}
	return true
}

// OnChange registers a callback run whenever the bound record changes, is
// removed, or the person is bound to another record
func (p *Person) OnChange(fn func()) {
	p.onChange = append(p.onChange, fn)
	if !p.listening {
		p.handle = p.notifier.Subscribe(types.FilterByID, p)
		p.listening = true
	}
}

// HandleChange implements types.Listener
func (p *Person) HandleChange(c types.Change) {
	if p.id == 0 || !slices.Contains(c.IDs, p.id) {
		return
	}
	switch c.Kind {
	case types.RecordChanged:
		p.changed()
	case types.RecordsRemoved:
		p.removed = true
		p.changed()
	}
}

func (p *Person) changed() {
	for _, fn := range p.onChange {
		fn()
	}
}

// Close stops listening for changes
func (p *Person) Close() {
	if p.listening {
		p.notifier.Unsubscribe(p.handle)
		p.listening = false
	}
	p.onChange = nil
}
