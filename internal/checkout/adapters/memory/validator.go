package memory

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"checkout/internal/checkout/models"
)

var postalFormats = map[string]*regexp.Regexp{
	"us": regexp.MustCompile(`^\d{5}(-\d{4})?$`),
	"ca": regexp.MustCompile(`^[A-Z]\d[A-Z] ?\d[A-Z]\d$`),
	"gb": regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}$`),
	"de": regexp.MustCompile(`^\d{5}$`),
	"fr": regexp.MustCompile(`^\d{5}$`),
	"jp": regexp.MustCompile(`^\d{3}-?\d{4}$`),
	"cn": regexp.MustCompile(`^\d{6}$`),
	"au": regexp.MustCompile(`^\d{4}$`),
}

// AddressValidator emulates the address enrichment service: it checks
// required fields and the postal code format of supported markets, and
// returns the normalized address.
type AddressValidator struct{}

func NewAddressValidator() *AddressValidator {
	return &AddressValidator{}
}

func (v *AddressValidator) ValidateAddress(_ context.Context, address models.AddressInput) (models.AddressInput, error) {
	out := address
	out.AddressLine1 = strings.TrimSpace(address.AddressLine1)
	out.City = strings.TrimSpace(address.City)
	out.PostalCode = strings.ToUpper(strings.TrimSpace(address.PostalCode))
	out.Country = strings.ToLower(strings.TrimSpace(address.Country))
	out.Region = strings.TrimSpace(address.Region)

	format, ok := postalFormats[out.Country]
	if !ok {
		return models.AddressInput{}, &models.AccessorError{
			StatusCode: http.StatusBadRequest,
			Code:       "InvalidCountryCode",
			Message:    "country " + out.Country + " is not supported",
		}
	}
	if out.AddressLine1 == "" || out.City == "" {
		return models.AddressInput{}, &models.AccessorError{
			StatusCode: http.StatusBadRequest,
			Code:       "InvalidAddress",
			Message:    "address line 1 and city are required",
		}
	}
	if !format.MatchString(out.PostalCode) {
		return models.AddressInput{}, &models.AccessorError{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       "InvalidPostalCode",
			Message:    "postal code does not match country " + out.Country,
		}
	}
	return out, nil
}
