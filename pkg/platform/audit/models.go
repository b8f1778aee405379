package audit

import (
	"context"
	"time"

	id "checkout/pkg/domain"
)

// EventCategory classifies audit events for routing and retention.
type EventCategory string

const (
	// CategoryPayment covers events with financial significance (instrument
	// attached, purchase confirmed).
	CategoryPayment EventCategory = "payment"

	// CategorySecurity covers step-up authentication and fraud signals.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine flow progress and degraded dependencies.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the checkout flow to capture key actions. It is
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	SessionID id.SessionID
	Partner   id.Partner
	Action    string
	// Component is the logical step the event belongs to (profile, address, payment, confirm).
	Component string
	Outcome   string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	EventProfileAttached    AuditEvent = "profile_attached"
	EventAddressAttached    AuditEvent = "address_attached"
	EventAddressRejected    AuditEvent = "address_rejected"
	EventInstrumentAttached AuditEvent = "payment_instrument_attached"
	EventCheckoutConfirmed  AuditEvent = "checkout_confirmed"
	EventChallengeIssued    AuditEvent = "challenge_issued"
	EventChallengeSkipped   AuditEvent = "challenge_render_degraded"
	EventFraudDegraded      AuditEvent = "fraud_evaluation_degraded"
	EventFraudRejected      AuditEvent = "fraud_evaluation_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventInstrumentAttached: CategoryPayment,
	EventCheckoutConfirmed:  CategoryPayment,

	EventChallengeIssued: CategorySecurity,
	EventFraudRejected:   CategorySecurity,

	EventProfileAttached:  CategoryOperations,
	EventAddressAttached:  CategoryOperations,
	EventAddressRejected:  CategoryOperations,
	EventChallengeSkipped: CategoryOperations,
	EventFraudDegraded:    CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Reader lists events recorded for one checkout session.
type Reader interface {
	ListBySession(ctx context.Context, sessionID id.SessionID) ([]Event, error)
}
