package service

import (
	"context"

	"checkout/internal/checkout/models"
	"checkout/internal/pidl/feature"
	pidlmodels "checkout/internal/pidl/models"
	"checkout/pkg/domain"
)

// callLog records accessor calls across collaborators in invocation order.
type callLog struct {
	calls []string
}

func (l *callLog) record(name string) { l.calls = append(l.calls, name) }

type recordingGateway struct {
	log        *callLog
	generation domain.APIGeneration
	failOn     map[string]error
}

func (g *recordingGateway) step(name string, id domain.SessionID) (*models.Session, error) {
	g.log.record(name)
	if err := g.failOn[name]; err != nil {
		return nil, err
	}
	return &models.Session{ID: id, Generation: g.generation, Status: models.SessionOpen}, nil
}

func (g *recordingGateway) Generation() domain.APIGeneration { return g.generation }

func (g *recordingGateway) Get(_ context.Context, id domain.SessionID) (*models.Session, error) {
	return g.step("Get", id)
}

func (g *recordingGateway) AttachProfile(_ context.Context, id domain.SessionID, _ string) (*models.Session, error) {
	return g.step("AttachProfile", id)
}

func (g *recordingGateway) AttachAddress(_ context.Context, id domain.SessionID, _ models.Address, _ models.AddressType) (*models.Session, error) {
	return g.step("AttachAddress", id)
}

func (g *recordingGateway) AttachPaymentInstrument(_ context.Context, id domain.SessionID, _ domain.PIID) (*models.Session, error) {
	return g.step("AttachPaymentInstrument", id)
}

func (g *recordingGateway) Confirm(_ context.Context, id domain.SessionID, _ domain.PIID) (*models.Session, error) {
	return g.step("Confirm", id)
}

func (g *recordingGateway) ChallengeAction(docs []*pidlmodels.ResourceDocument) models.ClientAction {
	return models.PidlAction(docs)
}

type recordingValidator struct {
	log *callLog
	err error
}

func (v *recordingValidator) ValidateAddress(_ context.Context, a models.AddressInput) (models.AddressInput, error) {
	v.log.record("ValidateAddress")
	return a, v.err
}

type recordingInstruments struct {
	log    *callLog
	err    error
	params []models.PostParams
}

func (s *recordingInstruments) PostPaymentInstrument(_ context.Context, _ models.PaymentInstrumentDraft, params models.PostParams, _ domain.Partner) (domain.PIID, error) {
	s.log.record("PostPaymentInstrument")
	s.params = append(s.params, params)
	if s.err != nil {
		return "", s.err
	}
	return "pi_recorded", nil
}

type recordingFraud struct {
	log *callLog
	rec models.Recommendation
	err error
}

func (f *recordingFraud) EvaluateFraud(_ context.Context, _ models.FraudRequest) (models.Recommendation, error) {
	f.log.record("EvaluateFraud")
	return f.rec, f.err
}

type noopRenderer struct{}

func (noopRenderer) RenderChallenge(context.Context, models.ChallengeDescriptor) ([]*pidlmodels.ResourceDocument, error) {
	return nil, nil
}

type noopComposer struct{}

func (noopComposer) Apply([]*pidlmodels.ResourceDocument, feature.Context) *feature.Decisions {
	return feature.NewDecisions()
}
