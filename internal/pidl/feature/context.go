package feature

import (
	"slices"
	"strings"
)

// PaymentMethod is one entry of the payment-method set a document is rendered for.
type PaymentMethod struct {
	Family string
	Type   string
}

// Params collects the inputs of a Context. Callers fill it once and hand it
// to NewContext; the Context copies everything it keeps.
type Params struct {
	Partner        string
	Country        string
	Language       string
	Operation      string
	Scenario       string
	ResourceType   string
	Flights        []string
	PaymentMethods []PaymentMethod
	IsGuestAccount bool
	AccountID      string
	SessionID      string
	WindowSize     string
	// PartnerConfig selects table-driven applicability when non-nil.
	PartnerConfig PartnerConfig
}

// Context is the immutable per-request input of the pipeline.
type Context struct {
	partner        string
	country        string
	language       string
	operation      string
	scenario       string
	resourceType   string
	flights        map[string]struct{}
	paymentMethods []PaymentMethod
	isGuest        bool
	accountID      string
	sessionID      string
	windowSize     string
	partnerConfig  PartnerConfig
}

// NewContext normalizes p into a Context. Identifiers are lowercased;
// flight names compare case-insensitively.
func NewContext(p Params) Context {
	flights := make(map[string]struct{}, len(p.Flights))
	for _, f := range p.Flights {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			flights[f] = struct{}{}
		}
	}
	return Context{
		partner:        lower(p.Partner),
		country:        lower(p.Country),
		language:       lower(p.Language),
		operation:      lower(p.Operation),
		scenario:       lower(p.Scenario),
		resourceType:   lower(p.ResourceType),
		flights:        flights,
		paymentMethods: slices.Clone(p.PaymentMethods),
		isGuest:        p.IsGuestAccount,
		accountID:      p.AccountID,
		sessionID:      p.SessionID,
		windowSize:     p.WindowSize,
		partnerConfig:  p.PartnerConfig.clone(),
	}
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (c Context) Partner() string      { return c.partner }
func (c Context) Country() string      { return c.country }
func (c Context) Language() string     { return c.language }
func (c Context) Operation() string    { return c.operation }
func (c Context) Scenario() string     { return c.scenario }
func (c Context) ResourceType() string { return c.resourceType }
func (c Context) IsGuestAccount() bool { return c.isGuest }
func (c Context) AccountID() string    { return c.accountID }
func (c Context) SessionID() string    { return c.sessionID }
func (c Context) WindowSize() string   { return c.windowSize }

// HasFlight reports whether the named flight is enabled.
func (c Context) HasFlight(name string) bool {
	_, ok := c.flights[strings.ToLower(name)]
	return ok
}

// PaymentMethods returns a copy of the payment-method set.
func (c Context) PaymentMethods() []PaymentMethod {
	return slices.Clone(c.paymentMethods)
}

// HasPaymentFamily reports whether any payment method belongs to family.
func (c Context) HasPaymentFamily(family string) bool {
	for _, pm := range c.paymentMethods {
		if strings.EqualFold(pm.Family, family) {
			return true
		}
	}
	return false
}

// TableDriven reports whether applicability comes from a partner table.
func (c Context) TableDriven() bool { return c.partnerConfig != nil }

// Setting returns the partner table entry for a feature.
func (c Context) Setting(name Name) (Setting, bool) {
	s, ok := c.partnerConfig[name]
	return s, ok
}
