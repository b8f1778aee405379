// Package challenge renders 3-D Secure v2 challenge documents.
package challenge

import (
	"context"
	"strings"

	"checkout/internal/checkout/models"
	"checkout/internal/pidl/builder"
	pidlmodels "checkout/internal/pidl/models"
)

// Renderer builds the base challenge document for a descriptor. It renders
// nothing for descriptors it cannot show, which the orchestrator treats as
// a degraded render.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) RenderChallenge(ctx context.Context, d models.ChallengeDescriptor) ([]*pidlmodels.ResourceDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Type != models.ChallengeThreeDSTwo || strings.TrimSpace(d.Currency) == "" || d.SessionID.IsNil() {
		return nil, nil
	}
	return []*pidlmodels.ResourceDocument{builder.ChallengeDocument(builder.ChallengeInput{
		SessionID:  d.SessionID.String(),
		PIID:       d.PIID.String(),
		Country:    d.Country,
		Language:   d.Language,
		Amount:     d.Amount.StringFixed(2),
		Currency:   d.Currency,
		WindowSize: string(d.WindowSize),
	})}, nil
}
