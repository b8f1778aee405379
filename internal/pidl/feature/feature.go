// Package feature holds the catalogue of document composition rules and the
// request context they are evaluated against.
package feature

import "checkout/internal/pidl/models"

// Name identifies a feature in partner tables, decisions and metrics.
type Name string

const (
	PaymentMethodGrouping    Name = "paymentMethodGrouping"
	CustomizeGroupedDisplay  Name = "customizeGroupedSelectDisplay"
	XboxNativeStyleHints     Name = "xboxNativeStyleHints"
	DisableCountryDropdown   Name = "disableCountryDropdown"
	HideSaveAddressForGuest  Name = "hideSaveAddressForGuest"
	RemoveCancelButton       Name = "removeCancelButton"
	RewriteLogoHost          Name = "rewriteLogoHost"
	CustomSubmitButtonText   Name = "customSubmitButtonText"
	ChallengeWindowHints     Name = "challengeWindowHints"
	AddAllFieldsRequiredText Name = "addAllFieldsRequiredText"
)

// Flights consulted by static predicates.
const (
	FlightDisableCountryDropdown   = "pxdisablecountrydropdown"
	FlightRemoveCancelButton       = "pxremovecancelbutton"
	FlightCustomSubmitButtonText   = "pxcustomsubmitbuttontext"
	FlightAddAllFieldsRequiredText = "pxaddallfieldsrequiredtext"
)

// Action mutates the request's documents. Actions may publish values to
// Decisions but never change the Context.
type Action func(docs []*models.ResourceDocument, c Context, d *Decisions)

// Feature is a named, stateless composition rule. The set of implementations
// is closed: only this package defines features.
type Feature interface {
	Name() Name
	// Applicable is the static predicate used when the partner has no
	// feature table, or for overridable features the table omits.
	Applicable(c Context) bool
	Actions() []Action
	sealed()
}

type partnerSet map[string]struct{}

func newPartnerSet(partners []string) partnerSet {
	set := make(partnerSet, len(partners))
	for _, p := range partners {
		set[lower(p)] = struct{}{}
	}
	return set
}

func (s partnerSet) contains(partner string) bool {
	_, ok := s[partner]
	return ok
}

func eachDoc(docs []*models.ResourceDocument, fn func(doc *models.ResourceDocument)) {
	for _, doc := range docs {
		if doc != nil {
			fn(doc)
		}
	}
}
