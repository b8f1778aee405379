package models

import (
	"encoding/json"
	"strings"

	"checkout/pkg/domain"
)

// PaymentInstrumentDraft is the caller's description of an instrument to
// create. WalletToken carries a Google Pay or Apple Pay payload verbatim.
type PaymentInstrumentDraft struct {
	Family      domain.PaymentMethodFamily `json:"family"`
	Type        string                     `json:"type"`
	Details     map[string]string          `json:"details,omitempty"`
	WalletToken json.RawMessage            `json:"wallet_token,omitempty"`
}

// PostParams are the query parameters sent with an instrument post.
type PostParams struct {
	SessionID          domain.SessionID
	AccountID          domain.AccountID
	Country            string
	RiskRecommendation Recommendation
}

// Recommendation is the fraud evaluator's verdict for an instrument post.
type Recommendation string

const (
	RecommendationApproved Recommendation = "approved"
	RecommendationReview   Recommendation = "review"
	RecommendationRejected Recommendation = "rejected"
)

// ParseRecommendation maps unknown verdicts to approved.
func ParseRecommendation(s string) Recommendation {
	switch r := Recommendation(strings.ToLower(strings.TrimSpace(s))); r {
	case RecommendationReview, RecommendationRejected:
		return r
	default:
		return RecommendationApproved
	}
}

// FraudRequest identifies the request being evaluated.
type FraudRequest struct {
	SessionID domain.SessionID
	AccountID domain.AccountID
	Partner   domain.Partner
	ClientIP  string
	UserAgent string
}
