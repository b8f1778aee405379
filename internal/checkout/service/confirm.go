package service

import (
	"context"
	"errors"
	"time"

	"checkout/internal/checkout/models"
	"checkout/internal/checkout/ports"
	"checkout/internal/pidl/feature"
	pidlmodels "checkout/internal/pidl/models"
	dErrors "checkout/pkg/domain-errors"
	"checkout/pkg/platform/audit"
)

const dependencyChallengeRenderer = "challenge_renderer"

var errNoChallengeDocument = errors.New("challenge renderer returned no document")

// Confirm confirms the session. When the session reports a pending
// 3-D Secure v2 challenge, the rendered challenge document replaces the
// session's own action. If rendering yields nothing, the session result is
// returned as is.
func (s *Service) Confirm(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opConfirm, req.SessionID)

	if req.PIID.IsNil() {
		err := dErrors.New(dErrors.CodeValidation, "piid is null or empty")
		s.finish(span, opConfirm, nil, start, err)
		return nil, err
	}
	if req.SessionID.IsNil() {
		err := dErrors.New(dErrors.CodeValidation, "request id is required")
		s.finish(span, opConfirm, nil, start, err)
		return nil, err
	}
	gw, err := s.gateway(req.Generation)
	if err != nil {
		s.finish(span, opConfirm, nil, start, err)
		return nil, err
	}

	result, err := s.confirm(ctx, gw, req)
	s.finish(span, opConfirm, gw, start, err)
	return result, err
}

func (s *Service) confirm(ctx context.Context, gw ports.SessionGateway, req models.ConfirmRequest) (*models.ConfirmResult, error) {
	session, err := gw.Confirm(ctx, req.SessionID, req.PIID)
	if err != nil {
		return nil, models.Tag(models.ComponentPayment, err)
	}
	s.audit(ctx, audit.EventCheckoutConfirmed, req.SessionID, req.Partner, string(models.ComponentPayment), string(session.Status))

	raw := &models.ConfirmResult{Session: session, Action: session.PrimaryAction()}
	pending, ok := session.PendingChallenge()
	if !ok {
		return raw, nil
	}

	rendered := s.renderChallenge(ctx, session, pending, req)
	if rendered.Degraded() {
		s.degraded(ctx, dependencyChallengeRenderer, req.SessionID, req.Partner, audit.EventChallengeSkipped, rendered.Err())
		return raw, nil
	}
	docs := rendered.OrElse(nil)

	if s.metrics != nil {
		s.metrics.IncrementChallengesIssued(gw.Generation().String())
	}
	s.audit(ctx, audit.EventChallengeIssued, req.SessionID, req.Partner, string(models.ComponentPayment), string(pending.Type))
	return &models.ConfirmResult{
		Session:           session,
		Action:            gw.ChallengeAction(docs),
		ChallengeRendered: true,
	}, nil
}

func (s *Service) renderChallenge(ctx context.Context, session *models.Session, pending *models.ChallengeDescriptor, req models.ConfirmRequest) models.Dependency[[]*pidlmodels.ResourceDocument] {
	window := models.ParseWindowSize(string(req.WindowSize))
	descriptor := models.NewChallengeDescriptor(session, pending, req.PIID, window)

	docs, err := s.challenges.RenderChallenge(ctx, descriptor)
	if err != nil {
		return models.Failed[[]*pidlmodels.ResourceDocument](err)
	}
	docs = compactDocuments(docs)
	if len(docs) == 0 {
		return models.Failed[[]*pidlmodels.ResourceDocument](errNoChallengeDocument)
	}

	fc := feature.NewContext(feature.Params{
		Partner:       req.Partner.String(),
		Country:       session.Country,
		Language:      session.Language,
		Operation:     "render",
		Scenario:      "threedsecure2",
		ResourceType:  "challenge",
		Flights:       req.Flights,
		SessionID:     req.SessionID.String(),
		WindowSize:    string(window),
		PartnerConfig: s.partnerConfig(ctx, req.Partner.String()),
	})
	s.composer.Apply(docs, fc)
	return models.Resolved(docs)
}

func (s *Service) partnerConfig(ctx context.Context, partner string) feature.PartnerConfig {
	if s.settings == nil || partner == "" {
		return nil
	}
	return s.settings.Resolve(ctx, partner)
}

func compactDocuments(docs []*pidlmodels.ResourceDocument) []*pidlmodels.ResourceDocument {
	out := docs[:0:0]
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}
