// Package builder produces the base resource documents the pipeline decorates.
package builder

import (
	"net/url"
	"strings"

	"checkout/internal/pidl/feature"
	"checkout/internal/pidl/models"
)

// DefaultChallengeHost serves the 3-D Secure challenge frame.
const DefaultChallengeHost = "https://challenge.payments.microsoft.com/threeds2/"

// PaymentMethodOption is one selectable payment method.
type PaymentMethodOption struct {
	Family      string `json:"family"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// ChallengeInput carries what the challenge document shows.
type ChallengeInput struct {
	SessionID  string
	PIID       string
	Country    string
	Language   string
	Amount     string
	Currency   string
	WindowSize string
}

func identity(descriptionType, family, typ, country, operation string) map[string]string {
	id := map[string]string{
		models.IdentityDescriptionType: descriptionType,
		models.IdentityCountry:         strings.ToLower(country),
		models.IdentityOperation:       operation,
	}
	if family != "" {
		id[models.IdentityFamily] = family
	}
	if typ != "" {
		id[models.IdentityType] = typ
	}
	return id
}

func buttons() []*models.DisplayHint {
	return []*models.DisplayHint{
		{ID: models.HintIDCancel, Type: models.HintButton, Content: "Cancel"},
		{ID: models.HintIDSubmit, Type: models.HintButton, Content: "Next"},
	}
}

// PaymentMethodSelectDocument lists the given methods in a dropdown.
func PaymentMethodSelectDocument(country string, methods []PaymentMethodOption) *models.ResourceDocument {
	options := make([]*models.DisplayHint, 0, len(methods))
	values := make([]string, 0, len(methods))
	for _, m := range methods {
		logo := m.LogoURL
		if logo == "" {
			logo = feature.DefaultLogoHost + "logos/" + m.Type + ".svg"
		}
		value := m.Family + "." + m.Type
		values = append(values, value)
		options = append(options, &models.DisplayHint{
			ID:        "option_" + m.Type,
			Type:      models.HintOption,
			Content:   m.DisplayName,
			SourceURL: logo,
			Tags:      map[string]string{models.TagFamily: m.Family, models.TagType: m.Type},
		})
	}
	selectHint := &models.DisplayHint{
		ID:           models.HintIDPaymentMethodSelect,
		Type:         models.HintProperty,
		PropertyName: "id",
		Layout:       models.LayoutDropdown,
		Members:      options,
	}
	page := &models.DisplayHint{
		ID:      "paymentMethodSelectPage",
		Type:    models.HintPage,
		Members: append([]*models.DisplayHint{selectHint}, buttons()...),
	}
	return &models.ResourceDocument{
		Identity: identity("paymentMethod", "", "", country, "select"),
		DataDescription: models.DataDescription{
			"id": {Type: "userData", DataType: "string", IsUpdatable: true, PossibleValues: values},
		},
		DisplayPages: []*models.DisplayHint{page},
	}
}

func addressProperties(country string) models.DataDescription {
	field := func(optional bool) *models.PropertyDescription {
		return &models.PropertyDescription{Type: "userData", DataType: "string", IsOptional: optional, IsUpdatable: true}
	}
	return models.DataDescription{
		"address_line1": field(false),
		"address_line2": field(true),
		"city":          field(false),
		"region":        field(true),
		"postal_code":   field(false),
		models.PropertyCountry: {
			Type: "userData", DataType: "string", IsUpdatable: true,
			DefaultValue: strings.ToLower(country),
		},
	}
}

func addressHints() []*models.DisplayHint {
	names := []string{"address_line1", "address_line2", "city", "region", "postal_code", models.PropertyCountry}
	hints := make([]*models.DisplayHint, 0, len(names))
	for _, n := range names {
		h := &models.DisplayHint{ID: n, Type: models.HintProperty, PropertyName: n}
		if n == models.PropertyCountry {
			h.Layout = models.LayoutDropdown
		}
		hints = append(hints, h)
	}
	return hints
}

// AddressDocument describes an address form of the given type (billing, shipping).
func AddressDocument(country, addressType, operation string) *models.ResourceDocument {
	members := addressHints()
	members = append(members, &models.DisplayHint{
		ID: models.HintIDSaveAddress, Type: models.HintProperty, PropertyName: "set_as_default",
		Content: "Save this address",
	})
	members = append(members, buttons()...)
	dd := addressProperties(country)
	dd["set_as_default"] = &models.PropertyDescription{Type: "userData", DataType: "bool", IsOptional: true, IsUpdatable: true}
	return &models.ResourceDocument{
		Identity:        identity("address", "", addressType, country, operation),
		DataDescription: dd,
		DisplayPages: []*models.DisplayHint{{
			ID: "addressPage", Type: models.HintPage, Members: members,
		}},
	}
}

// CreditCardDocument describes the add-card form with a linked billing
// address document.
func CreditCardDocument(country, operation string) *models.ResourceDocument {
	details := models.DataDescription{
		"accountHolderName": {Type: "userData", DataType: "string", IsUpdatable: true},
		"accountToken":      {Type: "userData", DataType: "string", IsUpdatable: true},
		"expiryMonth":       {Type: "userData", DataType: "string", IsUpdatable: true, Validation: "^(0?[1-9]|1[0-2])$"},
		"expiryYear":        {Type: "userData", DataType: "string", IsUpdatable: true, Validation: "^[0-9]{4}$"},
		"cvvToken":          {Type: "userData", DataType: "string", IsUpdatable: true},
		"address":           {Type: "userData", DataType: "object", IsUpdatable: true, Properties: addressProperties(country)},
	}
	members := []*models.DisplayHint{
		{ID: "accountHolderName", Type: models.HintProperty, PropertyName: "accountHolderName"},
		{ID: "accountToken", Type: models.HintProperty, PropertyName: "accountToken"},
		{ID: "expiryGroup", Type: models.HintGroup, Members: []*models.DisplayHint{
			{ID: "expiryMonth", Type: models.HintProperty, PropertyName: "expiryMonth", Layout: models.LayoutDropdown},
			{ID: "expiryYear", Type: models.HintProperty, PropertyName: "expiryYear", Layout: models.LayoutDropdown},
		}},
		{ID: "cvvToken", Type: models.HintProperty, PropertyName: "cvvToken"},
	}
	members = append(members, buttons()...)
	return &models.ResourceDocument{
		Identity: identity("paymentMethod", "credit_card", "", country, operation),
		DataDescription: models.DataDescription{
			"details": {Type: "userData", DataType: "object", IsUpdatable: true, Properties: details},
		},
		DisplayPages: []*models.DisplayHint{{
			ID: "creditCardPage", Type: models.HintPage, Members: members,
		}},
		LinkedDocuments: []*models.ResourceDocument{AddressDocument(country, "billing", operation)},
	}
}

// ChallengeDocument describes the 3-D Secure v2 challenge frame.
func ChallengeDocument(in ChallengeInput) *models.ResourceDocument {
	q := url.Values{}
	q.Set("session_id", in.SessionID)
	q.Set("piid", in.PIID)
	q.Set("language", in.Language)
	q.Set("window_size", in.WindowSize)
	doc := &models.ResourceDocument{
		Identity: identity("challenge", "", "threeds2", in.Country, "render"),
		DataDescription: models.DataDescription{
			"challengeCompletion": {Type: "clientData", DataType: "string", IsOptional: true},
		},
		DisplayPages: []*models.DisplayHint{{
			ID:   "challengePage",
			Type: models.HintPage,
			Members: []*models.DisplayHint{
				{ID: "challengeAmount", Type: models.HintText, Content: strings.TrimSpace(in.Amount + " " + strings.ToUpper(in.Currency))},
				{ID: models.HintIDChallengeFrame, Type: models.HintIFrame, SourceURL: DefaultChallengeHost + "challenge?" + q.Encode()},
				{ID: models.HintIDCancel, Type: models.HintButton, Content: "Cancel"},
			},
		}},
	}
	doc.Identity[models.IdentityScenario] = "threedsecure2"
	return doc
}
