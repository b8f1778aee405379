package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"checkout/pkg/domain"
)

// SessionStatus is the lifecycle state reported by the session API.
type SessionStatus string

const (
	SessionOpen             SessionStatus = "open"
	SessionPendingChallenge SessionStatus = "pending_challenge"
	SessionCompleted        SessionStatus = "completed"
)

// AddressType names the role of an attached address.
type AddressType string

const (
	AddressBilling  AddressType = "billing"
	AddressShipping AddressType = "shipping"
)

// ParseAddressType defaults to billing when s is blank.
func ParseAddressType(s string) (AddressType, bool) {
	switch AddressType(strings.ToLower(strings.TrimSpace(s))) {
	case "", AddressBilling:
		return AddressBilling, true
	case AddressShipping:
		return AddressShipping, true
	default:
		return "", false
	}
}

// Address is the session's address shape.
type Address struct {
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	Line3      string `json:"line3,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// PaymentMethodResult is an instrument attached to the session.
type PaymentMethodResult struct {
	PIID   domain.PIID `json:"piid"`
	Family string      `json:"family,omitempty"`
	Type   string      `json:"type,omitempty"`
	Status string      `json:"status"`
}

// Session is a snapshot of a checkout session as returned by the active
// session API. It is never mutated locally; every change goes through a gateway.
type Session struct {
	ID             domain.SessionID        `json:"id"`
	Generation     domain.APIGeneration    `json:"generation"`
	Status         SessionStatus           `json:"status"`
	Country        string                  `json:"country"`
	Language       string                  `json:"language"`
	Currency       string                  `json:"currency"`
	Amount         decimal.Decimal         `json:"amount"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
	Tax            decimal.Decimal         `json:"tax"`
	Email          string                  `json:"email,omitempty"`
	Addresses      map[AddressType]Address `json:"addresses,omitempty"`
	PaymentMethods []PaymentMethodResult   `json:"payment_methods,omitempty"`
	ClientActions  []ClientAction          `json:"client_actions,omitempty"`
}

// PendingChallenge returns the first pending 3-D Secure v2 challenge action.
func (s *Session) PendingChallenge() (*ChallengeDescriptor, bool) {
	if s == nil {
		return nil, false
	}
	for _, action := range s.ClientActions {
		if action.Type == ClientActionHandleChallenge && action.Challenge != nil && action.Challenge.Type == ChallengeThreeDSTwo {
			return action.Challenge, true
		}
	}
	return nil, false
}

// PrimaryAction is the action the session itself asks the client to take:
// its first pending client action, or None.
func (s *Session) PrimaryAction() ClientAction {
	if s == nil || len(s.ClientActions) == 0 {
		return NoneAction()
	}
	return s.ClientActions[0]
}

// AttachedPIID returns the most recently attached instrument id.
func (s *Session) AttachedPIID() domain.PIID {
	if s == nil || len(s.PaymentMethods) == 0 {
		return ""
	}
	return s.PaymentMethods[len(s.PaymentMethods)-1].PIID
}
