package service

import (
	"context"

	"checkout/internal/checkout/models"
	"checkout/pkg/domain"
	dErrors "checkout/pkg/domain-errors"
)

// Session returns the current snapshot of a session from its generation's
// API. Read failures are tagged with the payment component.
func (s *Service) Session(ctx context.Context, id domain.SessionID, gen domain.APIGeneration) (*models.Session, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "request id is required")
	}
	gw, err := s.gateway(gen)
	if err != nil {
		return nil, err
	}
	session, err := gw.Get(ctx, id)
	if err != nil {
		return nil, models.Tag(models.ComponentPayment, err)
	}
	return session, nil
}
