package partnersettings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"checkout/internal/partnersettings/store"
	"checkout/internal/pidl/feature"
	dErrors "checkout/pkg/domain-errors"
	"checkout/pkg/requestcontext"
)

// =============================================================================
// Partner Settings Service Test Suite
// =============================================================================
// Justification for unit tests: a missing table and an unreachable store
// both have to select static mode, and cached tables must not outlive a save.

type countingStore struct {
	*store.InMemoryStore
	finds int
	err   error
}

func (c *countingStore) Find(ctx context.Context, partner string) (feature.PartnerConfig, error) {
	c.finds++
	if c.err != nil {
		return nil, c.err
	}
	return c.InMemoryStore.Find(ctx, partner)
}

type ServiceSuite struct {
	suite.Suite
	store   *countingStore
	service *Service
	ctx     context.Context
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = &countingStore{InMemoryStore: store.NewInMemoryStore()}
	svc, err := New(s.store, WithCacheTTL(time.Minute), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)
	s.service = svc
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func table() feature.PartnerConfig {
	return feature.PartnerConfig{
		feature.RemoveCancelButton:     {Markets: []string{"us"}},
		feature.CustomSubmitButtonText: {Params: map[string]string{"text": "Pay now"}},
	}
}

func (s *ServiceSuite) TestNewRequiresStore() {
	_, err := New(nil)
	s.Require().Error(err)
}

func (s *ServiceSuite) TestResolve() {
	s.Require().NoError(s.service.Save(s.ctx, "Cart", table()))

	s.Run("known partner yields its table", func() {
		cfg := s.service.Resolve(s.ctx, " CART ")
		s.Require().NotNil(cfg)
		s.Equal([]string{"us"}, cfg[feature.RemoveCancelButton].Markets)
		s.Equal("Pay now", cfg[feature.CustomSubmitButtonText].Param("text", ""))
	})

	s.Run("unknown partner selects static mode", func() {
		s.Nil(s.service.Resolve(s.ctx, "webblends"))
	})

	s.Run("blank partner never reaches the store", func() {
		before := s.store.finds
		s.Nil(s.service.Resolve(s.ctx, "  "))
		s.Equal(before, s.store.finds)
	})
}

func (s *ServiceSuite) TestStoreFailureDegradesToStaticMode() {
	s.store.err = errors.New("connection refused")
	s.Nil(s.service.Resolve(s.ctx, "cart"))

	s.Run("failures are not cached", func() {
		s.store.err = nil
		s.Require().NoError(s.store.Save(s.ctx, "cart", table()))
		s.NotNil(s.service.Resolve(s.ctx, "cart"))
	})
}

func (s *ServiceSuite) TestCaching() {
	s.Require().NoError(s.service.Save(s.ctx, "cart", table()))

	s.service.Resolve(s.ctx, "cart")
	s.service.Resolve(s.ctx, "cart")
	s.Equal(1, s.store.finds)

	s.Run("misses are cached too", func() {
		s.service.Resolve(s.ctx, "other")
		s.service.Resolve(s.ctx, "other")
		s.Equal(2, s.store.finds)
	})

	s.Run("entries expire", func() {
		later := requestcontext.WithTime(context.Background(), s.now.Add(2*time.Minute))
		s.service.Resolve(later, "cart")
		s.Equal(3, s.store.finds)
	})

	s.Run("save invalidates", func() {
		updated := feature.PartnerConfig{feature.DisableCountryDropdown: {}}
		s.Require().NoError(s.service.Save(s.ctx, "cart", updated))
		cfg := s.service.Resolve(s.ctx, "cart")
		s.Contains(cfg, feature.DisableCountryDropdown)
		s.NotContains(cfg, feature.RemoveCancelButton)
	})

	s.Run("delete returns the partner to static mode", func() {
		s.Require().NoError(s.service.Delete(s.ctx, "cart"))
		s.Nil(s.service.Resolve(s.ctx, "cart"))
	})
}

func (s *ServiceSuite) TestSaveValidation() {
	err := s.service.Save(s.ctx, "", table())
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	err = s.service.Save(s.ctx, "cart", nil)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}
