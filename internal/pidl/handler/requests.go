package handler

import (
	"strings"

	"checkout/internal/pidl/builder"
	dErrors "checkout/pkg/domain-errors"
	pstrings "checkout/pkg/platform/strings"
)

// Resource types a render request may ask for.
const (
	ResourcePaymentMethodSelect = "paymentmethodselect"
	ResourceCreditCard          = "creditcard"
	ResourceAddress             = "address"
)

// RenderRequest is the HTTP request body for POST /pidl/render.
type RenderRequest struct {
	Partner        string                        `json:"partner"`
	Country        string                        `json:"country"`
	Language       string                        `json:"language"`
	Operation      string                        `json:"operation"`
	Scenario       string                        `json:"scenario"`
	ResourceType   string                        `json:"resource_type"`
	AddressType    string                        `json:"address_type"`
	Flights        []string                      `json:"flights"`
	PaymentMethods []builder.PaymentMethodOption `json:"payment_methods"`
	IsGuest        bool                          `json:"is_guest"`
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RenderRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.PaymentMethods) > 100 {
		return dErrors.New(dErrors.CodeValidation, "payment_methods must contain at most 100 entries")
	}

	r.Partner = strings.ToLower(strings.TrimSpace(r.Partner))
	if r.Partner == "" {
		return dErrors.New(dErrors.CodeValidation, "partner is required")
	}
	r.Country = strings.ToLower(strings.TrimSpace(r.Country))
	if len(r.Country) != 2 {
		return dErrors.New(dErrors.CodeValidation, "country must be a two-letter code")
	}
	r.Operation = strings.ToLower(strings.TrimSpace(r.Operation))
	if r.Operation == "" {
		r.Operation = "add"
	}
	r.Flights = pstrings.DedupeAndTrimLower(r.Flights)

	r.ResourceType = strings.ToLower(strings.TrimSpace(r.ResourceType))
	switch r.ResourceType {
	case ResourcePaymentMethodSelect:
		if len(r.PaymentMethods) == 0 {
			return dErrors.New(dErrors.CodeValidation, "payment_methods is required for paymentMethodSelect")
		}
		for i := range r.PaymentMethods {
			pm := &r.PaymentMethods[i]
			pm.Family = strings.ToLower(strings.TrimSpace(pm.Family))
			pm.Type = strings.ToLower(strings.TrimSpace(pm.Type))
			if pm.Family == "" || pm.Type == "" {
				return dErrors.New(dErrors.CodeValidation, "payment_methods entries require family and type")
			}
		}
	case ResourceCreditCard:
	case ResourceAddress:
		r.AddressType = strings.ToLower(strings.TrimSpace(r.AddressType))
		if r.AddressType == "" {
			r.AddressType = "billing"
		}
	case "":
		return dErrors.New(dErrors.CodeValidation, "resource_type is required")
	default:
		return dErrors.New(dErrors.CodeValidation, "unsupported resource_type: "+r.ResourceType)
	}
	return nil
}
