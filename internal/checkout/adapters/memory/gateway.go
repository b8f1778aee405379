// Package memory provides in-process emulators of the checkout accessors:
// both session API generations, the address validator and the instrument
// store. They back local development and handler tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"checkout/internal/checkout/models"
	pidlmodels "checkout/internal/pidl/models"
	"checkout/pkg/domain"
	"checkout/pkg/platform/sentinel"
)

// DefaultChallengeThreshold is the amount at or above which a confirmation
// asks for a 3-D Secure v2 challenge.
var DefaultChallengeThreshold = decimal.NewFromInt(100)

// SessionSeed opens a new emulated session.
type SessionSeed struct {
	Country  string
	Language string
	Currency string
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	// ForceChallenge asks for a challenge regardless of the amount.
	ForceChallenge bool
}

type record struct {
	session        models.Session
	forceChallenge bool
	challenged     bool
}

// sessionBook is the state shared by both gateway generations. Every read
// returns a copy so callers never observe later mutations.
type sessionBook struct {
	mu         sync.RWMutex
	generation domain.APIGeneration
	prefix     string
	threshold  decimal.Decimal
	sessions   map[domain.SessionID]*record
}

type Option func(*sessionBook)

// WithChallengeThreshold overrides DefaultChallengeThreshold.
func WithChallengeThreshold(amount decimal.Decimal) Option {
	return func(b *sessionBook) {
		b.threshold = amount
	}
}

func newSessionBook(gen domain.APIGeneration, prefix string, opts ...Option) *sessionBook {
	b := &sessionBook{
		generation: gen,
		prefix:     prefix,
		threshold:  DefaultChallengeThreshold,
		sessions:   make(map[domain.SessionID]*record),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *sessionBook) Generation() domain.APIGeneration { return b.generation }

// Create opens a session and returns its snapshot.
func (b *sessionBook) Create(_ context.Context, seed SessionSeed) (*models.Session, error) {
	if strings.TrimSpace(seed.Country) == "" || strings.TrimSpace(seed.Currency) == "" {
		return nil, &models.AccessorError{StatusCode: http.StatusBadRequest, Code: "InvalidRequestData", Message: "country and currency are required"}
	}
	if seed.Subtotal.IsNegative() || seed.Tax.IsNegative() {
		return nil, &models.AccessorError{StatusCode: http.StatusBadRequest, Code: "InvalidAmount", Message: "amounts must not be negative"}
	}
	id := domain.SessionID(b.prefix + uuid.NewString())
	r := &record{
		session: models.Session{
			ID:         id,
			Generation: b.generation,
			Status:     models.SessionOpen,
			Country:    strings.ToLower(strings.TrimSpace(seed.Country)),
			Language:   strings.ToLower(strings.TrimSpace(seed.Language)),
			Currency:   strings.ToLower(strings.TrimSpace(seed.Currency)),
			Subtotal:   seed.Subtotal,
			Tax:        seed.Tax,
			Amount:     seed.Subtotal.Add(seed.Tax),
		},
		forceChallenge: seed.ForceChallenge,
	}

	b.mu.Lock()
	b.sessions[id] = r
	b.mu.Unlock()
	return snapshot(r), nil
}

func (b *sessionBook) Get(_ context.Context, id domain.SessionID) (*models.Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
	}
	return snapshot(r), nil
}

func (b *sessionBook) AttachProfile(_ context.Context, id domain.SessionID, email string) (*models.Session, error) {
	return b.mutate(id, func(r *record) error {
		r.session.Email = email
		return nil
	})
}

func (b *sessionBook) AttachAddress(_ context.Context, id domain.SessionID, address models.Address, addressType models.AddressType) (*models.Session, error) {
	return b.mutate(id, func(r *record) error {
		if r.session.Addresses == nil {
			r.session.Addresses = make(map[models.AddressType]models.Address)
		}
		r.session.Addresses[addressType] = address
		return nil
	})
}

func (b *sessionBook) AttachPaymentInstrument(_ context.Context, id domain.SessionID, piid domain.PIID) (*models.Session, error) {
	return b.mutate(id, func(r *record) error {
		if piid.IsNil() {
			return &models.AccessorError{StatusCode: http.StatusBadRequest, Code: "InvalidPaymentInstrument", Message: "piid is required"}
		}
		r.session.PaymentMethods = append(r.session.PaymentMethods, models.PaymentMethodResult{PIID: piid, Status: "attached"})
		return nil
	})
}

// Confirm completes the session, or leaves it pending with a 3-D Secure v2
// challenge when the amount reaches the threshold. A second confirmation of
// a challenged session completes it.
func (b *sessionBook) Confirm(_ context.Context, id domain.SessionID, piid domain.PIID) (*models.Session, error) {
	return b.mutate(id, func(r *record) error {
		if !slices.ContainsFunc(r.session.PaymentMethods, func(p models.PaymentMethodResult) bool { return p.PIID == piid }) {
			return &models.AccessorError{StatusCode: http.StatusBadRequest, Code: "PaymentInstrumentNotAttached", Message: "piid is not attached to the session"}
		}
		if !r.challenged && (r.forceChallenge || r.session.Amount.GreaterThanOrEqual(b.threshold)) {
			r.challenged = true
			r.session.Status = models.SessionPendingChallenge
			r.session.ClientActions = []models.ClientAction{models.HandleChallengeAction(&models.ChallengeDescriptor{
				Type:      models.ChallengeThreeDSTwo,
				SessionID: r.session.ID,
				PIID:      piid,
			})}
			return nil
		}
		r.session.Status = models.SessionCompleted
		r.session.ClientActions = []models.ClientAction{models.MergeDataAction(map[string]any{
			"status":     string(models.SessionCompleted),
			"request_id": r.session.ID.String(),
			"generation": b.generation.String(),
		})}
		return nil
	})
}

// mutate applies fn to an open session under the write lock.
func (b *sessionBook) mutate(id domain.SessionID, fn func(*record) error) (*models.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
	}
	if r.session.Status == models.SessionCompleted {
		return nil, &models.AccessorError{StatusCode: http.StatusConflict, Code: "RequestAlreadyCompleted", Message: "session is already completed"}
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	return snapshot(r), nil
}

func snapshot(r *record) *models.Session {
	s := r.session
	s.Addresses = maps.Clone(r.session.Addresses)
	s.PaymentMethods = slices.Clone(r.session.PaymentMethods)
	s.ClientActions = slices.Clone(r.session.ClientActions)
	return &s
}

// LegacyGateway emulates the checkout-request API.
type LegacyGateway struct {
	*sessionBook
}

func NewLegacyGateway(opts ...Option) *LegacyGateway {
	return &LegacyGateway{sessionBook: newSessionBook(domain.GenerationLegacy, "cr_", opts...)}
}

// ChallengeAction returns every rendered document as one Pidl action.
func (g *LegacyGateway) ChallengeAction(docs []*pidlmodels.ResourceDocument) models.ClientAction {
	return models.PidlAction(docs)
}

// PaymentRequestGateway emulates the payment-request API.
type PaymentRequestGateway struct {
	*sessionBook
}

func NewPaymentRequestGateway(opts ...Option) *PaymentRequestGateway {
	return &PaymentRequestGateway{sessionBook: newSessionBook(domain.GenerationNext, "pr_", opts...)}
}

// ChallengeAction carries a single document; the payment-request API does
// not accept linked challenge pages.
func (g *PaymentRequestGateway) ChallengeAction(docs []*pidlmodels.ResourceDocument) models.ClientAction {
	if len(docs) == 0 {
		return models.PidlAction(nil)
	}
	return models.PidlAction(docs[:1])
}
