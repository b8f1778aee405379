package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"checkout/internal/checkout/adapters/memory"
	"checkout/internal/checkout/models"
	"checkout/internal/ratelimit"
	"checkout/pkg/domain"
	dErrors "checkout/pkg/domain-errors"
	"checkout/pkg/platform/httputil"
	pstrings "checkout/pkg/platform/strings"
	"checkout/pkg/requestcontext"
)

// FlightUsePaymentRequestAPI routes a request to the payment-request API
// when no generation is named in the body.
const FlightUsePaymentRequestAPI = "usepaymentrequestapi"

// Service defines the checkout orchestrator operations.
type Service interface {
	Session(ctx context.Context, id domain.SessionID, gen domain.APIGeneration) (*models.Session, error)
	AttachProfile(ctx context.Context, req models.AttachProfileRequest) (*models.Session, error)
	AttachAddress(ctx context.Context, req models.AttachAddressRequest) (*models.Session, error)
	AttachPaymentInstrument(ctx context.Context, req models.AttachPaymentInstrumentRequest) (*models.Session, error)
	Confirm(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error)
}

// SessionCreator opens sessions on an emulated session API.
type SessionCreator interface {
	Create(ctx context.Context, seed memory.SessionSeed) (*models.Session, error)
}

// Handler handles checkout session endpoints.
type Handler struct {
	service  Service
	creators map[domain.APIGeneration]SessionCreator
	limiter  RouteLimiter
	logger   *slog.Logger
}

// RouteLimiter supplies per-class throttling middleware.
type RouteLimiter interface {
	Limit(class ratelimit.Class) func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithSessionCreator enables POST /checkout/sessions for gen.
func WithSessionCreator(gen domain.APIGeneration, creator SessionCreator) Option {
	return func(h *Handler) {
		h.creators[gen] = creator
	}
}

// WithRateLimiter throttles every session route, confirm more tightly.
func WithRateLimiter(limiter RouteLimiter) Option {
	return func(h *Handler) {
		h.limiter = limiter
	}
}

// New creates a checkout Handler.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:  service,
		creators: make(map[domain.APIGeneration]SessionCreator),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts checkout endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/checkout/sessions", func(r chi.Router) {
		confirm := chi.Chain()
		if h.limiter != nil {
			r.Use(h.limiter.Limit(ratelimit.ClassCheckout))
			confirm = chi.Chain(h.limiter.Limit(ratelimit.ClassConfirm))
		}
		if len(h.creators) > 0 {
			r.Post("/", h.HandleCreateSession)
		}
		r.Get("/{sessionID}", h.HandleGetSession)
		r.Post("/{sessionID}/profile", h.HandleAttachProfile)
		r.Post("/{sessionID}/address", h.HandleAttachAddress)
		r.Post("/{sessionID}/payment-instrument", h.HandleAttachPaymentInstrument)
		r.With(confirm...).Post("/{sessionID}/confirm", h.HandleConfirm)
	})
}

// HandleCreateSession handles POST /checkout/sessions.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateSessionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	gen := h.generation(ctx, req.generation)
	if gen == "" {
		gen = domain.GenerationLegacy
	}
	creator, ok := h.creators[gen]
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "session creation is not available for "+gen.String()))
		return
	}

	session, err := creator.Create(ctx, memory.SessionSeed{
		Country:        req.Country,
		Language:       req.Language,
		Currency:       req.Currency,
		Subtotal:       req.Subtotal,
		Tax:            req.Tax,
		ForceChallenge: req.ForceChallenge,
	})
	if err != nil {
		h.writeFailure(ctx, w, "create session failed", requestID, "", models.Tag(models.ComponentPayment, err))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, &SessionResponse{Session: session})
}

// HandleGetSession handles GET /checkout/sessions/{sessionID}.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := sessionIDParam(r)

	gen, err := parseGeneration(r.URL.Query().Get("api_generation"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	session, err := h.service.Session(ctx, sessionID, h.generation(ctx, gen))
	if err != nil {
		h.writeFailure(ctx, w, "get session failed", requestID, sessionID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &SessionResponse{Session: session})
}

// HandleAttachProfile handles POST /checkout/sessions/{sessionID}/profile.
func (h *Handler) HandleAttachProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := sessionIDParam(r)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AttachProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	session, err := h.service.AttachProfile(ctx, models.AttachProfileRequest{
		SessionID:  sessionID,
		Email:      req.Email,
		Generation: h.generation(ctx, req.generation),
	})
	if err != nil {
		h.writeFailure(ctx, w, "attach profile failed", requestID, sessionID, err)
		return
	}

	h.logger.InfoContext(ctx, "profile attached",
		"request_id", requestID,
		"session_id", sessionID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, &SessionResponse{Session: session})
}

// HandleAttachAddress handles POST /checkout/sessions/{sessionID}/address.
func (h *Handler) HandleAttachAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := sessionIDParam(r)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AttachAddressRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	session, err := h.service.AttachAddress(ctx, models.AttachAddressRequest{
		SessionID:   sessionID,
		Address:     req.Address,
		AddressType: req.addressType,
		Generation:  h.generation(ctx, req.generation),
	})
	if err != nil {
		h.writeFailure(ctx, w, "attach address failed", requestID, sessionID, err)
		return
	}

	h.logger.InfoContext(ctx, "address attached",
		"request_id", requestID,
		"session_id", sessionID,
		"address_type", req.addressType,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, &SessionResponse{Session: session})
}

// HandleAttachPaymentInstrument handles
// POST /checkout/sessions/{sessionID}/payment-instrument.
func (h *Handler) HandleAttachPaymentInstrument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := sessionIDParam(r)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AttachPaymentInstrumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	session, err := h.service.AttachPaymentInstrument(ctx, models.AttachPaymentInstrumentRequest{
		SessionID:  sessionID,
		AccountID:  domain.AccountID(req.AccountID),
		Country:    req.Country,
		Partner:    domain.Partner(req.Partner),
		Draft:      req.draft(),
		Profile:    req.Profile,
		Address:    req.address,
		Generation: h.generation(ctx, req.generation),
		ClientIP:   requestcontext.ClientIP(ctx),
		UserAgent:  requestcontext.UserAgent(ctx),
	})
	if err != nil {
		h.writeFailure(ctx, w, "attach payment instrument failed", requestID, sessionID, err)
		return
	}

	h.logger.InfoContext(ctx, "payment instrument attached",
		"request_id", requestID,
		"session_id", sessionID,
		"partner", req.Partner,
		"family", req.family,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, &SessionResponse{Session: session})
}

// HandleConfirm handles POST /checkout/sessions/{sessionID}/confirm.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := sessionIDParam(r)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ConfirmRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	result, err := h.service.Confirm(ctx, models.ConfirmRequest{
		SessionID:  sessionID,
		PIID:       domain.PIID(req.PIID),
		WindowSize: models.WindowSize(req.WindowSize),
		Partner:    domain.Partner(req.Partner),
		Flights:    pstrings.DedupeAndTrimLower(slices.Concat(requestcontext.Flights(ctx), req.Flights)),
		Generation: h.generation(ctx, req.generation),
	})
	if err != nil {
		h.writeFailure(ctx, w, "confirm failed", requestID, sessionID, err)
		return
	}

	h.logger.InfoContext(ctx, "checkout confirmed",
		"request_id", requestID,
		"session_id", sessionID,
		"partner", req.Partner,
		"client_action", result.Action.Type,
		"challenge_rendered", result.ChallengeRendered,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, toConfirmResponse(result))
}

// generation prefers the generation named in the request, then the
// payment-request flight. An empty result selects the service default.
func (h *Handler) generation(ctx context.Context, requested domain.APIGeneration) domain.APIGeneration {
	if requested != "" {
		return requested
	}
	if slices.Contains(requestcontext.Flights(ctx), FlightUsePaymentRequestAPI) {
		return domain.GenerationNext
	}
	return ""
}

func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, msg, requestID string, sessionID domain.SessionID, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestID,
		"session_id", sessionID,
		"error", err,
	)
	httputil.WriteError(w, err)
}

func sessionIDParam(r *http.Request) domain.SessionID {
	return domain.SessionID(chi.URLParam(r, "sessionID"))
}
