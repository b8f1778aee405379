// Package partnersettings resolves the per-partner feature tables that switch
// document composition into table-driven mode.
package partnersettings

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"checkout/internal/partnersettings/store"
	"checkout/internal/pidl/feature"
	dErrors "checkout/pkg/domain-errors"
	"checkout/pkg/requestcontext"
)

// Store persists feature tables keyed by partner.
type Store interface {
	Find(ctx context.Context, partner string) (feature.PartnerConfig, error)
	Save(ctx context.Context, partner string, cfg feature.PartnerConfig) error
	Delete(ctx context.Context, partner string) error
}

type cacheEntry struct {
	cfg       feature.PartnerConfig
	expiresAt time.Time
}

// Service resolves partner tables with a short read-through cache.
type Service struct {
	store    Store
	logger   *slog.Logger
	cacheTTL time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCacheTTL caches resolved tables, including misses, for ttl. Zero
// disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

func New(st Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("partner settings store is required")
	}
	s := &Service{
		store:  st,
		logger: slog.Default(),
		cache:  make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Resolve returns the partner's table, or nil when the partner has none.
// Store failures also yield nil so rendering falls back to static mode.
func (s *Service) Resolve(ctx context.Context, partner string) feature.PartnerConfig {
	partner = strings.ToLower(strings.TrimSpace(partner))
	if partner == "" {
		return nil
	}
	now := requestcontext.Now(ctx)
	if cfg, ok := s.cached(partner, now); ok {
		return cfg
	}

	cfg, err := s.store.Find(ctx, partner)
	switch {
	case errors.Is(err, store.ErrNotFound):
		cfg = nil
	case err != nil:
		s.logger.WarnContext(ctx, "partner settings unavailable, using static feature selection",
			"partner", partner,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil
	}
	s.remember(partner, cfg, now)
	return cfg
}

// Save replaces a partner's table.
func (s *Service) Save(ctx context.Context, partner string, cfg feature.PartnerConfig) error {
	partner = strings.ToLower(strings.TrimSpace(partner))
	if partner == "" {
		return dErrors.New(dErrors.CodeValidation, "partner is required")
	}
	if cfg == nil {
		return dErrors.New(dErrors.CodeValidation, "feature table is required")
	}
	if err := s.store.Save(ctx, partner, cfg); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save partner settings")
	}
	s.forget(partner)
	return nil
}

// Delete returns the partner to static mode.
func (s *Service) Delete(ctx context.Context, partner string) error {
	partner = strings.ToLower(strings.TrimSpace(partner))
	if err := s.store.Delete(ctx, partner); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete partner settings")
	}
	s.forget(partner)
	return nil
}

func (s *Service) cached(partner string, now time.Time) (feature.PartnerConfig, bool) {
	if s.cacheTTL <= 0 {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[partner]
	if !ok || !now.Before(e.expiresAt) {
		return nil, false
	}
	return e.cfg, true
}

func (s *Service) remember(partner string, cfg feature.PartnerConfig, now time.Time) {
	if s.cacheTTL <= 0 {
		return
	}
	s.mu.Lock()
	s.cache[partner] = cacheEntry{cfg: cfg, expiresAt: now.Add(s.cacheTTL)}
	s.mu.Unlock()
}

func (s *Service) forget(partner string) {
	s.mu.Lock()
	delete(s.cache, partner)
	s.mu.Unlock()
}
