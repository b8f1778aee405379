// Package ports defines the collaborators the checkout orchestrator consumes.
// Each interface is a narrow contract over an out-of-process accessor.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"

	"checkout/internal/checkout/models"
	"checkout/internal/pidl/feature"
	pidlmodels "checkout/internal/pidl/models"
	"checkout/pkg/domain"
	"checkout/pkg/platform/audit"
	"checkout/pkg/requestcontext"
)

// SessionGateway is one API generation of the session accessor. Every
// method returns the session snapshot after the call.
type SessionGateway interface {
	Generation() domain.APIGeneration

	Get(ctx context.Context, id domain.SessionID) (*models.Session, error)

	AttachProfile(ctx context.Context, id domain.SessionID, email string) (*models.Session, error)

	AttachAddress(ctx context.Context, id domain.SessionID, address models.Address, addressType models.AddressType) (*models.Session, error)

	AttachPaymentInstrument(ctx context.Context, id domain.SessionID, piid domain.PIID) (*models.Session, error)

	Confirm(ctx context.Context, id domain.SessionID, piid domain.PIID) (*models.Session, error)

	// ChallengeAction wraps rendered challenge documents the way this
	// generation's clients expect them.
	ChallengeAction(docs []*pidlmodels.ResourceDocument) models.ClientAction
}

// AddressValidator checks an address against market formatting rules and
// returns the normalized form.
type AddressValidator interface {
	ValidateAddress(ctx context.Context, address models.AddressInput) (models.AddressInput, error)
}

// InstrumentStore creates payment instruments.
type InstrumentStore interface {
	PostPaymentInstrument(ctx context.Context, draft models.PaymentInstrumentDraft, params models.PostParams, partner domain.Partner) (domain.PIID, error)
}

// FraudEvaluator scores an instrument post.
type FraudEvaluator interface {
	EvaluateFraud(ctx context.Context, req models.FraudRequest) (models.Recommendation, error)
}

// ChallengeRenderer builds the base challenge documents. It may return no
// documents when it cannot render the descriptor.
type ChallengeRenderer interface {
	RenderChallenge(ctx context.Context, descriptor models.ChallengeDescriptor) ([]*pidlmodels.ResourceDocument, error)
}

// DocumentComposer applies partner features to rendered documents.
type DocumentComposer interface {
	Apply(docs []*pidlmodels.ResourceDocument, c feature.Context) *feature.Decisions
}

// PartnerSettings resolves a partner's feature table; nil selects static mode.
type PartnerSettings interface {
	Resolve(ctx context.Context, partner string) feature.PartnerConfig
}

// AuditPublisher emits audit events for checkout milestones.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LogAudit logs an audit event and, when a publisher is configured, emits it.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.Event, attrs ...any) {
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.RequestID != "" {
		attrs = append(attrs, "request_id", event.RequestID)
	}

	args := append(attrs,
		"event", event.Action,
		"session_id", event.SessionID,
		"log_type", "audit",
	)
	if event.Component != "" {
		args = append(args, "component", event.Component)
	}
	if event.Outcome != "" {
		args = append(args, "outcome", event.Outcome)
	}

	if logger != nil {
		logger.InfoContext(ctx, event.Action, args...)
	}

	if publisher == nil {
		return
	}
	if err := publisher.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
