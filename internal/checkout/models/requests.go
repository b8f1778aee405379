package models

import (
	"strings"

	"checkout/pkg/domain"
)

// AddressInput is the caller's address shape.
type AddressInput struct {
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	AddressLine3 string `json:"address_line3,omitempty"`
	City         string `json:"city"`
	Region       string `json:"region,omitempty"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

// ToSessionAddress converts the caller shape to the session shape.
func (a AddressInput) ToSessionAddress() Address {
	return Address{
		FirstName:  strings.TrimSpace(a.FirstName),
		LastName:   strings.TrimSpace(a.LastName),
		Line1:      strings.TrimSpace(a.AddressLine1),
		Line2:      strings.TrimSpace(a.AddressLine2),
		Line3:      strings.TrimSpace(a.AddressLine3),
		City:       strings.TrimSpace(a.City),
		Region:     strings.TrimSpace(a.Region),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.ToLower(strings.TrimSpace(a.Country)),
		Phone:      strings.TrimSpace(a.PhoneNumber),
	}
}

// AttachProfileRequest attaches an email to a session.
type AttachProfileRequest struct {
	SessionID  domain.SessionID
	Email      string
	Generation domain.APIGeneration
}

// AttachAddressRequest validates and attaches an address.
type AttachAddressRequest struct {
	SessionID   domain.SessionID
	Address     AddressInput
	AddressType AddressType
	Generation  domain.APIGeneration
}

// AddressSection is the address part of a composite payload.
type AddressSection struct {
	Address     AddressInput
	AddressType AddressType
}

// AttachPaymentInstrumentRequest posts an instrument and attaches it.
// Profile and Address are optional sections of a composite payload.
type AttachPaymentInstrumentRequest struct {
	SessionID  domain.SessionID
	AccountID  domain.AccountID
	Country    string
	Partner    domain.Partner
	Draft      PaymentInstrumentDraft
	Profile    *string
	Address    *AddressSection
	Generation domain.APIGeneration
	ClientIP   string
	UserAgent  string
}

// ConfirmRequest confirms a session with an attached instrument.
type ConfirmRequest struct {
	SessionID  domain.SessionID
	PIID       domain.PIID
	WindowSize WindowSize
	Partner    domain.Partner
	Flights    []string
	Generation domain.APIGeneration
}

// ConfirmResult pairs the confirmed session with the action for the caller.
type ConfirmResult struct {
	Session *Session
	Action  ClientAction
	// ChallengeRendered is true when Action replaces the session's own
	// pending challenge with a rendered document.
	ChallengeRendered bool
}
