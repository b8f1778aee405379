// Package models defines PIDL resource documents: the UI-description units
// returned to client renderers and decorated by the composition pipeline.
package models

// HintType classifies a display hint.
type HintType string

const (
	HintPage     HintType = "page"
	HintGroup    HintType = "group"
	HintProperty HintType = "property"
	HintOption   HintType = "option"
	HintButton   HintType = "button"
	HintText     HintType = "text"
	HintLogo     HintType = "logo"
	HintIFrame   HintType = "iframe"
)

// Layout is the arrangement a container hint asks the client to render.
type Layout string

const (
	LayoutDefault       Layout = ""
	LayoutDropdown      Layout = "dropdown"
	LayoutGroupedSelect Layout = "groupedSelect"
	LayoutButtonList    Layout = "buttonList"
)

// DisplayHint is one node of a document's display tree.
type DisplayHint struct {
	ID           string            `json:"displayId"`
	Type         HintType          `json:"displayType"`
	PropertyName string            `json:"propertyName,omitempty"`
	Content      string            `json:"displayContent,omitempty"`
	SourceURL    string            `json:"sourceUrl,omitempty"`
	Layout       Layout            `json:"layout,omitempty"`
	Hidden       bool              `json:"isHidden,omitempty"`
	Disabled     bool              `json:"isDisabled,omitempty"`
	StyleHints   []string          `json:"styleHints,omitempty"`
	Tags         map[string]string `json:"displayTags,omitempty"`
	Members      []*DisplayHint    `json:"members,omitempty"`
}

// PropertyDescription describes one data field; Properties nests sub-objects.
type PropertyDescription struct {
	Type           string          `json:"propertyType"`
	DataType       string          `json:"dataType,omitempty"`
	IsOptional     bool            `json:"isOptional,omitempty"`
	IsUpdatable    bool            `json:"isUpdatable"`
	DefaultValue   string          `json:"defaultValue,omitempty"`
	PossibleValues []string        `json:"possibleValues,omitempty"`
	Validation     string          `json:"validationRegex,omitempty"`
	Properties     DataDescription `json:"properties,omitempty"`
}

// DataDescription is the data-description tree keyed by property name.
type DataDescription map[string]*PropertyDescription

// ResourceDocument is a PIDL resource: identity, data description, display
// pages and linked sub-documents.
type ResourceDocument struct {
	Identity        map[string]string   `json:"identity"`
	DataDescription DataDescription     `json:"data_description"`
	DisplayPages    []*DisplayHint      `json:"displayDescription"`
	LinkedDocuments []*ResourceDocument `json:"linkedPidls,omitempty"`
	// ClientSettings carries auxiliary payload for the renderer (style
	// profile, customization switches). It never changes structure.
	ClientSettings map[string]string `json:"clientSettings,omitempty"`
}

// Identity keys.
const (
	IdentityDescriptionType = "description_type"
	IdentityFamily          = "family"
	IdentityType            = "type"
	IdentityCountry         = "country"
	IdentityOperation       = "operation"
	IdentityScenario        = "scenario"
)

// DescriptionType returns the identity's description type (paymentMethod, address, challenge, ...).
func (d *ResourceDocument) DescriptionType() string {
	return d.Identity[IdentityDescriptionType]
}

// SetClientSetting records auxiliary payload on the document.
func (d *ResourceDocument) SetClientSetting(key, value string) {
	if d.ClientSettings == nil {
		d.ClientSettings = make(map[string]string)
	}
	d.ClientSettings[key] = value
}

// Well-known display ids and property names shared by builders and features.
const (
	HintIDPaymentMethodSelect = "paymentMethod"
	HintIDSaveAddress         = "saveAddressCheckbox"
	HintIDCancel              = "cancelButton"
	HintIDSubmit              = "submitButton"
	HintIDAllFieldsRequired   = "allFieldsRequiredText"
	HintIDChallengeFrame      = "challengeIFrame"

	PropertyCountry = "country"

	TagFamily = "family"
	TagType   = "type"
	TagWidth  = "width"
	TagHeight = "height"
)
