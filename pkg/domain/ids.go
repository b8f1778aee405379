package domain

import (
	"strings"

	dErrors "checkout/pkg/domain-errors"
)

// SessionID identifies a checkout session (legacy CheckoutRequest or
// next-generation PaymentRequest). Values are opaque and minted by the
// session accessor.
type SessionID string

// AccountID identifies the payer account a payment instrument is stored under.
type AccountID string

// PIID identifies a stored payment instrument.
type PIID string

// Partner identifies the calling storefront or surface.
type Partner string

// maxIDLength bounds identifiers accepted at trust boundaries.
const maxIDLength = 128

func parseOpaque(kind, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > maxIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" is too long")
	}
	for _, r := range s {
		if r < 0x21 || r > 0x7e {
			return "", dErrors.New(dErrors.CodeInvalidInput, kind+" contains invalid characters")
		}
	}
	return s, nil
}

// ParseSessionID validates a session id taken from external input.
func ParseSessionID(s string) (SessionID, error) {
	v, err := parseOpaque("session id", s)
	return SessionID(v), err
}

// ParseAccountID validates an account id taken from external input.
func ParseAccountID(s string) (AccountID, error) {
	v, err := parseOpaque("account id", s)
	return AccountID(v), err
}

// ParsePIID validates an instrument id taken from external input.
func ParsePIID(s string) (PIID, error) {
	v, err := parseOpaque("piid", s)
	return PIID(v), err
}

// ParsePartner normalizes a partner name. Partners are matched case-insensitively.
func ParsePartner(s string) (Partner, error) {
	v, err := parseOpaque("partner", s)
	return Partner(strings.ToLower(v)), err
}

func (id SessionID) String() string { return string(id) }
func (id AccountID) String() string { return string(id) }
func (id PIID) String() string      { return string(id) }
func (p Partner) String() string    { return string(p) }

func (id SessionID) IsNil() bool { return id == "" }
func (id AccountID) IsNil() bool { return id == "" }
func (id PIID) IsNil() bool      { return id == "" }
