package memory

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"checkout/internal/checkout/models"
	"checkout/pkg/domain"
)

// StoredInstrument is an instrument created by InstrumentStore.
type StoredInstrument struct {
	PIID    domain.PIID
	Draft   models.PaymentInstrumentDraft
	Params  models.PostParams
	Partner domain.Partner
}

// InstrumentStore emulates the payment instrument service.
type InstrumentStore struct {
	mu          sync.RWMutex
	instruments map[domain.PIID]StoredInstrument
}

func NewInstrumentStore() *InstrumentStore {
	return &InstrumentStore{instruments: make(map[domain.PIID]StoredInstrument)}
}

// PostPaymentInstrument creates an instrument. Card posts need an account,
// and a rejected risk recommendation refuses the post.
func (s *InstrumentStore) PostPaymentInstrument(_ context.Context, draft models.PaymentInstrumentDraft, params models.PostParams, partner domain.Partner) (domain.PIID, error) {
	if strings.TrimSpace(draft.Type) == "" {
		return "", &models.AccessorError{StatusCode: http.StatusBadRequest, Code: "InvalidPaymentMethodType", Message: "payment method type is required"}
	}
	if draft.Family.RequiresAccountBinding() && params.AccountID.IsNil() {
		return "", &models.AccessorError{StatusCode: http.StatusBadRequest, Code: "AccountNotFound", Message: "account id is required"}
	}
	if params.RiskRecommendation == models.RecommendationRejected {
		return "", &models.AccessorError{StatusCode: http.StatusForbidden, Code: "RejectedByRisk", Message: "payment instrument rejected by risk evaluation"}
	}

	piid := domain.PIID("pi_" + uuid.NewString())
	s.mu.Lock()
	s.instruments[piid] = StoredInstrument{PIID: piid, Draft: draft, Params: params, Partner: partner}
	s.mu.Unlock()
	return piid, nil
}

// Get returns a created instrument.
func (s *InstrumentStore) Get(piid domain.PIID) (StoredInstrument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.instruments[piid]
	return in, ok
}
