// Package fraud provides a local fraud evaluator that scores instrument posts
// from client signals.
package fraud

import (
	"context"
	"net/netip"
	"strings"

	"github.com/mssola/useragent"

	"checkout/internal/checkout/models"
)

// Evaluator rejects automated clients and asks for review when client
// signals are missing or unusable.
type Evaluator struct {
	blockedPrefixes []netip.Prefix
}

type Option func(*Evaluator)

// WithBlockedNetworks rejects posts from the given CIDR ranges. Unparseable
// entries are skipped.
func WithBlockedNetworks(cidrs ...string) Option {
	return func(e *Evaluator) {
		for _, c := range cidrs {
			if p, err := netip.ParsePrefix(strings.TrimSpace(c)); err == nil {
				e.blockedPrefixes = append(e.blockedPrefixes, p)
			}
		}
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) EvaluateFraud(ctx context.Context, req models.FraudRequest) (models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	addr, ipErr := netip.ParseAddr(strings.TrimSpace(req.ClientIP))
	if ipErr == nil {
		for _, p := range e.blockedPrefixes {
			if p.Contains(addr) {
				return models.RecommendationRejected, nil
			}
		}
	}

	agent := strings.TrimSpace(req.UserAgent)
	if agent == "" {
		return models.RecommendationReview, nil
	}
	ua := useragent.New(agent)
	if ua.Bot() {
		return models.RecommendationRejected, nil
	}
	if name, _ := ua.Browser(); name == "" || ipErr != nil {
		return models.RecommendationReview, nil
	}
	return models.RecommendationApproved, nil
}
