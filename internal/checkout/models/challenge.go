package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"checkout/pkg/domain"
)

// ChallengeType identifies a step-up authentication scheme.
type ChallengeType string

const (
	ChallengeThreeDSTwo ChallengeType = "ThreeDSTwo"
	ChallengeThreeDSOne ChallengeType = "ThreeDSOne"
)

// WindowSize is the EMV 3-D Secure challenge window size indicator.
type WindowSize string

const (
	Window250x400  WindowSize = "01"
	Window390x400  WindowSize = "02"
	Window500x600  WindowSize = "03"
	Window600x400  WindowSize = "04"
	WindowFullPage WindowSize = "05"
)

// ParseWindowSize accepts the two-digit indicator; anything else yields the
// full-page default.
func ParseWindowSize(s string) WindowSize {
	switch w := WindowSize(strings.TrimSpace(s)); w {
	case Window250x400, Window390x400, Window500x600, Window600x400, WindowFullPage:
		return w
	default:
		return WindowFullPage
	}
}

// ChallengeDescriptor is handed to the challenge renderer. It is built per
// confirmation and never stored.
type ChallengeDescriptor struct {
	Type       ChallengeType    `json:"type"`
	SessionID  domain.SessionID `json:"session_id,omitempty"`
	PIID       domain.PIID      `json:"piid,omitempty"`
	Country    string           `json:"country,omitempty"`
	Language   string           `json:"language,omitempty"`
	Amount     decimal.Decimal  `json:"amount"`
	Currency   string           `json:"currency,omitempty"`
	WindowSize WindowSize       `json:"window_size,omitempty"`
}

// NewChallengeDescriptor combines the session's purchase context with the
// caller's window hint.
func NewChallengeDescriptor(s *Session, pending *ChallengeDescriptor, piid domain.PIID, window WindowSize) ChallengeDescriptor {
	d := ChallengeDescriptor{
		Type:       ChallengeThreeDSTwo,
		SessionID:  s.ID,
		PIID:       piid,
		Country:    s.Country,
		Language:   s.Language,
		Amount:     s.Amount,
		Currency:   s.Currency,
		WindowSize: window,
	}
	if pending != nil && pending.Type != "" {
		d.Type = pending.Type
	}
	return d
}
