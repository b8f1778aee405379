package service

import (
	"context"
	"strings"
	"time"

	"checkout/internal/checkout/models"
	"checkout/internal/checkout/ports"
	"checkout/internal/checkout/wallet"
	"checkout/pkg/domain"
	dErrors "checkout/pkg/domain-errors"
	"checkout/pkg/platform/audit"
)

// AttachProfile attaches the buyer's email to the session.
func (s *Service) AttachProfile(ctx context.Context, req models.AttachProfileRequest) (*models.Session, error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opAttachProfile, req.SessionID)

	gw, err := s.gateway(req.Generation)
	if err != nil {
		s.finish(span, opAttachProfile, nil, start, err)
		return nil, err
	}
	session, err := s.attachProfile(ctx, gw, req.SessionID, "", req.Email)
	s.finish(span, opAttachProfile, gw, start, err)
	return session, err
}

// AttachAddress validates the address and attaches it. A rejected address
// leaves the session untouched.
func (s *Service) AttachAddress(ctx context.Context, req models.AttachAddressRequest) (*models.Session, error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opAttachAddress, req.SessionID)

	gw, err := s.gateway(req.Generation)
	if err != nil {
		s.finish(span, opAttachAddress, nil, start, err)
		return nil, err
	}
	session, err := s.attachAddress(ctx, gw, req.SessionID, "", req.Address, req.AddressType)
	s.finish(span, opAttachAddress, gw, start, err)
	return session, err
}

// AttachPaymentInstrument posts the draft and attaches the resulting
// instrument. Wallet tokens contribute email and address first; composite
// payloads attach their profile and address sections in that order, stopping
// at the first failure.
func (s *Service) AttachPaymentInstrument(ctx context.Context, req models.AttachPaymentInstrumentRequest) (*models.Session, error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, opAttachPaymentInstrument, req.SessionID)

	if err := validateInstrumentRequest(req); err != nil {
		s.finish(span, opAttachPaymentInstrument, nil, start, err)
		return nil, err
	}
	gw, err := s.gateway(req.Generation)
	if err != nil {
		s.finish(span, opAttachPaymentInstrument, nil, start, err)
		return nil, err
	}

	var session *models.Session
	if wallet.IsWalletType(req.Draft.Type) && len(req.Draft.WalletToken) > 0 {
		session, err = s.attachFromWallet(ctx, gw, req)
	} else {
		session, err = s.attachComposite(ctx, gw, req)
	}
	s.finish(span, opAttachPaymentInstrument, gw, start, err)
	return session, err
}

// validateInstrumentRequest runs before any accessor is called.
func validateInstrumentRequest(req models.AttachPaymentInstrumentRequest) error {
	if req.Draft.Family.RequiresAccountBinding() {
		if req.SessionID.IsNil() {
			return dErrors.New(dErrors.CodeValidation, "request id is required for "+req.Draft.Family.String()+" instruments")
		}
		if req.AccountID.IsNil() {
			return dErrors.New(dErrors.CodeValidation, "account id is required for "+req.Draft.Family.String()+" instruments")
		}
	}
	if req.SessionID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "request id is required")
	}
	return nil
}

func (s *Service) attachFromWallet(ctx context.Context, gw ports.SessionGateway, req models.AttachPaymentInstrumentRequest) (*models.Session, error) {
	extract, err := wallet.Parse(req.Draft.Type, req.Draft.WalletToken)
	if err != nil {
		return nil, err
	}
	if extract.Email != "" {
		if _, err := s.attachProfile(ctx, gw, req.SessionID, req.Partner, extract.Email); err != nil {
			return nil, models.Label(models.ComponentProfile, err)
		}
	}
	if extract.Address != nil {
		if _, err := s.attachAddress(ctx, gw, req.SessionID, req.Partner, *extract.Address, models.AddressShipping); err != nil {
			return nil, models.Label(models.ComponentAddress, err)
		}
	}
	return s.postAndAttach(ctx, gw, req, extract.Draft)
}

func (s *Service) attachComposite(ctx context.Context, gw ports.SessionGateway, req models.AttachPaymentInstrumentRequest) (*models.Session, error) {
	if req.Profile != nil {
		if _, err := s.attachProfile(ctx, gw, req.SessionID, req.Partner, *req.Profile); err != nil {
			return nil, models.Label(models.ComponentProfile, err)
		}
	}
	if req.Address != nil {
		if _, err := s.attachAddress(ctx, gw, req.SessionID, req.Partner, req.Address.Address, req.Address.AddressType); err != nil {
			return nil, models.Label(models.ComponentAddress, err)
		}
	}
	return s.postAndAttach(ctx, gw, req, req.Draft)
}

func (s *Service) attachProfile(ctx context.Context, gw ports.SessionGateway, id domain.SessionID, partner domain.Partner, email string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is null or empty")
	}
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "request id is required")
	}
	session, err := gw.AttachProfile(ctx, id, email)
	if err != nil {
		return nil, models.Tag(models.ComponentProfile, err)
	}
	s.audit(ctx, audit.EventProfileAttached, id, partner, string(models.ComponentProfile), "success")
	return session, nil
}

func (s *Service) attachAddress(ctx context.Context, gw ports.SessionGateway, id domain.SessionID, partner domain.Partner, address models.AddressInput, addressType models.AddressType) (*models.Session, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "request id is required")
	}
	if addressType == "" {
		addressType = models.AddressBilling
	}
	validated, err := s.validator.ValidateAddress(ctx, address)
	if err != nil {
		tagged := models.Tag(models.ComponentAddress, err)
		s.audit(ctx, audit.EventAddressRejected, id, partner, string(models.ComponentAddress), "rejected")
		return nil, tagged
	}
	session, err := gw.AttachAddress(ctx, id, validated.ToSessionAddress(), addressType)
	if err != nil {
		return nil, models.Tag(models.ComponentAddress, err)
	}
	s.audit(ctx, audit.EventAddressAttached, id, partner, string(models.ComponentAddress), "success")
	return session, nil
}

func (s *Service) postAndAttach(ctx context.Context, gw ports.SessionGateway, req models.AttachPaymentInstrumentRequest, draft models.PaymentInstrumentDraft) (*models.Session, error) {
	params := models.PostParams{
		SessionID: req.SessionID,
		AccountID: req.AccountID,
		Country:   strings.ToLower(strings.TrimSpace(req.Country)),
	}
	if draft.Family.RequiresAccountBinding() {
		params.RiskRecommendation = s.recommendation(ctx, req)
	}

	piid, err := s.instruments.PostPaymentInstrument(ctx, draft, params, req.Partner)
	if err != nil {
		return nil, models.Tag(models.ComponentPayment, err)
	}
	session, err := gw.AttachPaymentInstrument(ctx, req.SessionID, piid)
	if err != nil {
		return nil, models.Tag(models.ComponentPayment, err)
	}
	s.audit(ctx, audit.EventInstrumentAttached, req.SessionID, req.Partner, string(models.ComponentPayment), "success")
	return session, nil
}
