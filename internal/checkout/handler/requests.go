package handler

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"checkout/internal/checkout/models"
	"checkout/pkg/domain"
	dErrors "checkout/pkg/domain-errors"
)

const maxWalletTokenBytes = 16 << 10

// CreateSessionRequest is the HTTP request body for POST /checkout/sessions.
type CreateSessionRequest struct {
	Country        string          `json:"country"`
	Language       string          `json:"language"`
	Currency       string          `json:"currency"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	ForceChallenge bool            `json:"force_challenge"`
	Generation     string          `json:"api_generation"`

	generation domain.APIGeneration
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateSessionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Country = strings.ToLower(strings.TrimSpace(r.Country))
	if len(r.Country) != 2 {
		return dErrors.New(dErrors.CodeValidation, "country must be a two-letter code")
	}
	r.Currency = strings.ToLower(strings.TrimSpace(r.Currency))
	if len(r.Currency) != 3 {
		return dErrors.New(dErrors.CodeValidation, "currency must be a three-letter code")
	}
	if r.Subtotal.IsNegative() || r.Tax.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "amounts must not be negative")
	}
	gen, err := parseGeneration(r.Generation)
	if err != nil {
		return err
	}
	r.generation = gen
	return nil
}

// AttachProfileRequest is the HTTP request body for the profile step.
type AttachProfileRequest struct {
	Email      string `json:"email"`
	Generation string `json:"api_generation"`

	generation domain.APIGeneration
}

// Validate leaves email emptiness to the orchestrator, which owns that rule.
func (r *AttachProfileRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	gen, err := parseGeneration(r.Generation)
	if err != nil {
		return err
	}
	r.generation = gen
	return nil
}

// AttachAddressRequest is the HTTP request body for the address step.
type AttachAddressRequest struct {
	Address     models.AddressInput `json:"address"`
	AddressType string              `json:"address_type"`
	Generation  string              `json:"api_generation"`

	addressType models.AddressType
	generation  domain.APIGeneration
}

func (r *AttachAddressRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	addressType, ok := models.ParseAddressType(r.AddressType)
	if !ok {
		return dErrors.New(dErrors.CodeValidation, "address_type must be billing or shipping")
	}
	r.addressType = addressType
	gen, err := parseGeneration(r.Generation)
	if err != nil {
		return err
	}
	r.generation = gen
	return nil
}

// AddressSection is the optional address part of a composite payload.
type AddressSection struct {
	Address     models.AddressInput `json:"address"`
	AddressType string              `json:"address_type"`
}

// AttachPaymentInstrumentRequest is the HTTP request body for the instrument
// step. Profile and Address make it a composite payload.
type AttachPaymentInstrumentRequest struct {
	AccountID   string            `json:"account_id"`
	Country     string            `json:"country"`
	Partner     string            `json:"partner"`
	Family      string            `json:"payment_method_family"`
	Type        string            `json:"payment_method_type"`
	Details     map[string]string `json:"details"`
	WalletToken json.RawMessage   `json:"wallet_token"`
	Profile     *string           `json:"profile"`
	Address     *AddressSection   `json:"address"`
	Generation  string            `json:"api_generation"`

	family     domain.PaymentMethodFamily
	address    *models.AddressSection
	generation domain.APIGeneration
}

func (r *AttachPaymentInstrumentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	family, err := domain.ParsePaymentMethodFamily(r.Family)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "payment_method_family is invalid")
	}
	r.family = family
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		return dErrors.New(dErrors.CodeValidation, "payment_method_type is required")
	}
	if len(r.WalletToken) > maxWalletTokenBytes {
		return dErrors.New(dErrors.CodeValidation, "wallet_token is too large")
	}
	r.Partner = strings.ToLower(strings.TrimSpace(r.Partner))
	if r.Address != nil {
		addressType, ok := models.ParseAddressType(r.Address.AddressType)
		if !ok {
			return dErrors.New(dErrors.CodeValidation, "address_type must be billing or shipping")
		}
		r.address = &models.AddressSection{Address: r.Address.Address, AddressType: addressType}
	}
	gen, err := parseGeneration(r.Generation)
	if err != nil {
		return err
	}
	r.generation = gen
	return nil
}

func (r *AttachPaymentInstrumentRequest) draft() models.PaymentInstrumentDraft {
	return models.PaymentInstrumentDraft{
		Family:      r.family,
		Type:        r.Type,
		Details:     r.Details,
		WalletToken: r.WalletToken,
	}
}

// ConfirmRequest is the HTTP request body for the confirm step.
type ConfirmRequest struct {
	PIID       string   `json:"piid"`
	WindowSize string   `json:"challenge_window_size"`
	Partner    string   `json:"partner"`
	Flights    []string `json:"flights"`
	Generation string   `json:"api_generation"`

	generation domain.APIGeneration
}

// Validate leaves piid emptiness to the orchestrator, which owns that rule.
func (r *ConfirmRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.PIID = strings.TrimSpace(r.PIID)
	r.Partner = strings.ToLower(strings.TrimSpace(r.Partner))
	gen, err := parseGeneration(r.Generation)
	if err != nil {
		return err
	}
	r.generation = gen
	return nil
}

func parseGeneration(s string) (domain.APIGeneration, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	gen, err := domain.ParseAPIGeneration(s)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeValidation, "api_generation is invalid")
	}
	return gen, nil
}
