package feature

import (
	"strings"

	"checkout/internal/pidl/models"
)

// Static asset hosts used by logo rewriting.
const (
	DefaultLogoHost = "https://staticresources.payments.microsoft.com/"
	ChinaLogoHost   = "https://staticresources.payments.microsoft.cn/"
)

const (
	defaultSubmitText        = "Continue"
	defaultAllFieldsRequired = "All fields are required unless marked optional."
)

// disableCountryDropdown locks the country field.
type disableCountryDropdown struct{}

func (disableCountryDropdown) Name() Name { return DisableCountryDropdown }
func (disableCountryDropdown) sealed()    {}

func (disableCountryDropdown) Applicable(c Context) bool {
	return c.HasFlight(FlightDisableCountryDropdown) || c.Operation() == "update"
}

func (disableCountryDropdown) Actions() []Action {
	return []Action{disableCountry}
}

func disableCountry(docs []*models.ResourceDocument, _ Context, _ *Decisions) {
	eachDoc(docs, func(doc *models.ResourceDocument) {
		for _, h := range doc.HintsForProperty(models.PropertyCountry) {
			h.Disabled = true
		}
		for _, nested := range doc.Documents() {
			lockProperty(nested.DataDescription, models.PropertyCountry)
		}
	})
}

func lockProperty(dd models.DataDescription, name string) {
	for key, prop := range dd {
		if prop == nil {
			continue
		}
		if key == name {
			prop.IsUpdatable = false
		}
		lockProperty(prop.Properties, name)
	}
}

// hideSaveAddressForGuest hides the save-address checkbox for guest checkouts.
type hideSaveAddressForGuest struct{}

func (hideSaveAddressForGuest) Name() Name { return HideSaveAddressForGuest }
func (hideSaveAddressForGuest) sealed()    {}

func (hideSaveAddressForGuest) Applicable(c Context) bool { return c.IsGuestAccount() }

func (hideSaveAddressForGuest) Actions() []Action {
	return []Action{hideSaveAddress}
}

func hideSaveAddress(docs []*models.ResourceDocument, _ Context, _ *Decisions) {
	eachDoc(docs, func(doc *models.ResourceDocument) {
		for _, h := range doc.HintByID(models.HintIDSaveAddress) {
			h.Hidden = true
		}
	})
}

type removeCancelButton struct{}

func (removeCancelButton) Name() Name { return RemoveCancelButton }
func (removeCancelButton) sealed()    {}

func (removeCancelButton) Applicable(c Context) bool {
	return c.HasFlight(FlightRemoveCancelButton)
}

func (removeCancelButton) Actions() []Action {
	return []Action{removeCancel}
}

func removeCancel(docs []*models.ResourceDocument, _ Context, d *Decisions) {
	eachDoc(docs, func(doc *models.ResourceDocument) {
		if doc.RemoveHint(models.HintIDCancel) {
			d.Set(RemoveCancelButton, "removed", "true")
		}
	})
}

// rewriteLogoHost points logo urls at the regional static host.
type rewriteLogoHost struct{}

func (rewriteLogoHost) Name() Name { return RewriteLogoHost }
func (rewriteLogoHost) sealed()    {}

func (rewriteLogoHost) Applicable(c Context) bool { return c.Country() == "cn" }

func (rewriteLogoHost) Actions() []Action {
	return []Action{rewriteLogos}
}

func rewriteLogos(docs []*models.ResourceDocument, c Context, _ *Decisions) {
	setting, _ := c.Setting(RewriteLogoHost)
	host := setting.Param("host", ChinaLogoHost)
	if host == DefaultLogoHost {
		return
	}
	eachDoc(docs, func(doc *models.ResourceDocument) {
		doc.Walk(func(h *models.DisplayHint) bool {
			if strings.HasPrefix(h.SourceURL, host) {
				return true
			}
			if rest, ok := strings.CutPrefix(h.SourceURL, DefaultLogoHost); ok {
				h.SourceURL = host + rest
			}
			return true
		})
	})
}

type customSubmitButtonText struct{}

func (customSubmitButtonText) Name() Name { return CustomSubmitButtonText }
func (customSubmitButtonText) sealed()    {}

func (customSubmitButtonText) Applicable(c Context) bool {
	return c.HasFlight(FlightCustomSubmitButtonText)
}

func (customSubmitButtonText) Actions() []Action {
	return []Action{rewriteSubmitText}
}

func rewriteSubmitText(docs []*models.ResourceDocument, c Context, _ *Decisions) {
	setting, _ := c.Setting(CustomSubmitButtonText)
	text := setting.Param("text", defaultSubmitText)
	eachDoc(docs, func(doc *models.ResourceDocument) {
		for _, h := range doc.HintByID(models.HintIDSubmit) {
			h.Content = text
		}
	})
}

// addAllFieldsRequiredText prepends a notice to the first page of each document.
type addAllFieldsRequiredText struct{}

func (addAllFieldsRequiredText) Name() Name { return AddAllFieldsRequiredText }
func (addAllFieldsRequiredText) sealed()    {}

func (addAllFieldsRequiredText) Applicable(c Context) bool {
	return c.HasFlight(FlightAddAllFieldsRequiredText)
}

func (addAllFieldsRequiredText) Actions() []Action {
	return []Action{prependRequiredNotice}
}

func prependRequiredNotice(docs []*models.ResourceDocument, c Context, _ *Decisions) {
	setting, _ := c.Setting(AddAllFieldsRequiredText)
	text := setting.Param("text", defaultAllFieldsRequired)
	eachDoc(docs, func(doc *models.ResourceDocument) {
		if len(doc.DisplayPages) == 0 || len(doc.HintByID(models.HintIDAllFieldsRequired)) > 0 {
			return
		}
		page := doc.DisplayPages[0]
		notice := &models.DisplayHint{ID: models.HintIDAllFieldsRequired, Type: models.HintText, Content: text}
		page.Members = append([]*models.DisplayHint{notice}, page.Members...)
	})
}
