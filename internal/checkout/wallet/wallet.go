// Package wallet extracts checkout data from Google Pay and Apple Pay
// payment payloads.
package wallet

import (
	"strings"

	"github.com/tidwall/gjson"

	"checkout/internal/checkout/models"
	"checkout/pkg/domain"
	dErrors "checkout/pkg/domain-errors"
)

// Payment method types carried as wallet tokens.
const (
	TypeGooglePay = "googlepay"
	TypeApplePay  = "applepay"
)

// IsWalletType reports whether methodType is a recognized wallet token format.
func IsWalletType(methodType string) bool {
	switch strings.ToLower(strings.TrimSpace(methodType)) {
	case TypeGooglePay, TypeApplePay:
		return true
	default:
		return false
	}
}

// Extract is what a wallet payload contributes to the checkout.
// Email and Address are empty when the wallet did not share them.
type Extract struct {
	Email   string
	Address *models.AddressInput
	Draft   models.PaymentInstrumentDraft
}

// Parse reads a wallet payload of the given method type.
func Parse(methodType string, payload []byte) (*Extract, error) {
	if !gjson.ValidBytes(payload) {
		return nil, dErrors.New(dErrors.CodeValidation, "wallet token is not valid json")
	}
	doc := gjson.ParseBytes(payload)
	switch strings.ToLower(strings.TrimSpace(methodType)) {
	case TypeGooglePay:
		return parseGooglePay(doc)
	case TypeApplePay:
		return parseApplePay(doc)
	default:
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported wallet type: "+methodType)
	}
}

func parseGooglePay(doc gjson.Result) (*Extract, error) {
	token := doc.Get("paymentMethodData.tokenizationData.token")
	if !token.Exists() || token.String() == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "wallet token missing paymentMethodData.tokenizationData.token")
	}
	out := &Extract{
		Email: strings.TrimSpace(doc.Get("email").String()),
		Draft: models.PaymentInstrumentDraft{
			Family: domain.FamilyEWallet,
			Type:   TypeGooglePay,
			Details: compact(map[string]string{
				"token":            token.String(),
				"tokenizationType": doc.Get("paymentMethodData.tokenizationData.type").String(),
				"network":          strings.ToLower(doc.Get("paymentMethodData.info.cardNetwork").String()),
				"lastFourDigits":   doc.Get("paymentMethodData.info.cardDetails").String(),
				"description":      doc.Get("paymentMethodData.description").String(),
			}),
		},
	}
	if shipping := doc.Get("shippingAddress"); shipping.IsObject() {
		first, last := splitName(shipping.Get("name").String())
		out.Address = &models.AddressInput{
			FirstName:    first,
			LastName:     last,
			AddressLine1: shipping.Get("address1").String(),
			AddressLine2: shipping.Get("address2").String(),
			AddressLine3: shipping.Get("address3").String(),
			City:         shipping.Get("locality").String(),
			Region:       shipping.Get("administrativeArea").String(),
			PostalCode:   shipping.Get("postalCode").String(),
			Country:      strings.ToLower(shipping.Get("countryCode").String()),
			PhoneNumber:  shipping.Get("phoneNumber").String(),
		}
	}
	return out, nil
}

func parseApplePay(doc gjson.Result) (*Extract, error) {
	paymentData := doc.Get("token.paymentData")
	if !paymentData.Exists() || paymentData.Raw == "" || paymentData.Raw == "{}" {
		return nil, dErrors.New(dErrors.CodeValidation, "wallet token missing token.paymentData")
	}
	contact := doc.Get("shippingContact")
	out := &Extract{
		Email: strings.TrimSpace(contact.Get("emailAddress").String()),
		Draft: models.PaymentInstrumentDraft{
			Family: domain.FamilyEWallet,
			Type:   TypeApplePay,
			Details: compact(map[string]string{
				"token":                 paymentData.Raw,
				"network":               strings.ToLower(doc.Get("token.paymentMethod.network").String()),
				"description":           doc.Get("token.paymentMethod.displayName").String(),
				"cardType":              doc.Get("token.paymentMethod.type").String(),
				"transactionIdentifier": doc.Get("token.transactionIdentifier").String(),
			}),
		},
	}
	if contact.IsObject() && contact.Get("addressLines").IsArray() {
		lines := contact.Get("addressLines").Array()
		line := func(i int) string {
			if i < len(lines) {
				return lines[i].String()
			}
			return ""
		}
		out.Address = &models.AddressInput{
			FirstName:    contact.Get("givenName").String(),
			LastName:     contact.Get("familyName").String(),
			AddressLine1: line(0),
			AddressLine2: line(1),
			AddressLine3: line(2),
			City:         contact.Get("locality").String(),
			Region:       contact.Get("administrativeArea").String(),
			PostalCode:   contact.Get("postalCode").String(),
			Country:      strings.ToLower(contact.Get("countryCode").String()),
			PhoneNumber:  contact.Get("phoneNumber").String(),
		}
	}
	return out, nil
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if i := strings.LastIndex(full, " "); i > 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func compact(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
