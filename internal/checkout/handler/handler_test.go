package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"checkout/internal/checkout/adapters/challenge"
	"checkout/internal/checkout/adapters/fraud"
	"checkout/internal/checkout/adapters/memory"
	"checkout/internal/checkout/models"
	"checkout/internal/checkout/service"
	"checkout/internal/pidl/feature"
	pidlmodels "checkout/internal/pidl/models"
	"checkout/internal/pidl/pipeline"
	"checkout/internal/ratelimit"
	"checkout/pkg/domain"
	"checkout/pkg/platform/middleware/metadata"
	"checkout/pkg/testutil"
)

// =============================================================================
// Checkout Handler Test Suite
// =============================================================================
// Justification for unit tests: the handler resolves the API generation,
// merges flights, maps DTOs onto orchestrator requests and turns tagged
// errors into responses. The suite drives the real orchestrator over the
// in-memory emulators so each route is exercised end to end.

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type HandlerSuite struct {
	suite.Suite
	instruments *memory.InstrumentStore
	svc         *service.Service
	logger      *slog.Logger
	router      chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	legacy := memory.NewLegacyGateway()
	next := memory.NewPaymentRequestGateway()
	s.instruments = memory.NewInstrumentStore()

	composer, err := pipeline.New(feature.NewRegistry(feature.WithXboxNativePartners("xboxnative")), pipeline.WithLogger(logger))
	s.Require().NoError(err)

	svc, err := service.New(
		service.Gateways{Legacy: legacy, Next: next},
		memory.NewAddressValidator(),
		s.instruments,
		fraud.New(),
		challenge.NewRenderer(),
		composer,
		service.WithLogger(logger),
	)
	s.Require().NoError(err)
	s.svc = svc
	s.logger = logger

	h := New(svc, logger,
		WithSessionCreator(domain.GenerationLegacy, legacy),
		WithSessionCreator(domain.GenerationNext, next),
	)
	s.router = chi.NewRouter()
	s.router.Use(metadata.RequestID, metadata.ClientMetadata, metadata.Flights)
	h.Register(s.router)
}

func (s *HandlerSuite) createSession(body map[string]any, flights ...string) *models.Session {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/checkout/sessions", body)
	if len(flights) > 0 {
		testutil.WithFlights(req, flights...)
	}
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[SessionResponse](s.T(), rr).Session
}

func (s *HandlerSuite) post(path string, body any, flights ...string) (int, []byte) {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, body)
	req.Header.Set("User-Agent", chromeUA)
	req.RemoteAddr = "203.0.113.7:51234"
	if len(flights) > 0 {
		testutil.WithFlights(req, flights...)
	}
	rr := testutil.DoRequest(s.router, req)
	return rr.Code, rr.Body.Bytes()
}

func basePath(id domain.SessionID) string {
	return "/checkout/sessions/" + id.String()
}

// =============================================================================
// Happy paths
// =============================================================================

func (s *HandlerSuite) TestLegacyCheckoutWithoutChallenge() {
	session := s.createSession(map[string]any{"country": "US", "language": "en-US", "currency": "USD", "subtotal": "20.00"})
	s.Equal(domain.GenerationLegacy, session.Generation)
	path := basePath(session.ID)

	status, body := s.post(path+"/profile", map[string]any{"email": "buyer@example.com"})
	s.Require().Equal(http.StatusOK, status, string(body))

	status, body = s.post(path+"/address", map[string]any{
		"address":      map[string]any{"address_line1": "1 Main St", "city": "Seattle", "postal_code": "98101", "country": "us"},
		"address_type": "shipping",
	})
	s.Require().Equal(http.StatusOK, status, string(body))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, path+"/payment-instrument", map[string]any{
		"account_id":            "acc_1",
		"country":               "US",
		"partner":               "cart",
		"payment_method_family": "credit_card",
		"payment_method_type":   "visa",
	})
	req.Header.Set("User-Agent", chromeUA)
	req.RemoteAddr = "203.0.113.7:51234"
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	attached := testutil.UnmarshalResponse[SessionResponse](s.T(), rr).Session
	piid := attached.AttachedPIID()
	s.Require().False(piid.IsNil())
	s.Equal("buyer@example.com", attached.Email)
	s.Contains(attached.Addresses, models.AddressShipping)

	stored, ok := s.instruments.Get(piid)
	s.Require().True(ok)
	s.Equal(models.RecommendationApproved, stored.Params.RiskRecommendation)
	s.Equal("us", stored.Params.Country)

	confirmReq := testutil.NewJSONRequest(s.T(), http.MethodPost, path+"/confirm", map[string]any{"piid": piid})
	rr = testutil.DoRequest(s.router, confirmReq)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	resp := testutil.UnmarshalResponse[ConfirmResponse](s.T(), rr)
	s.False(resp.ChallengeRendered)
	s.Equal(models.ClientActionMergeData, resp.ClientAction.Type)
	s.Equal(models.SessionCompleted, resp.Session.Status)

	getReq := testutil.NewJSONRequest(s.T(), http.MethodGet, path, nil)
	rr = testutil.DoRequest(s.router, getReq)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(models.SessionCompleted, testutil.UnmarshalResponse[SessionResponse](s.T(), rr).Session.Status)
}

func (s *HandlerSuite) TestPaymentRequestChallengeIsRendered() {
	flight := FlightUsePaymentRequestAPI
	session := s.createSession(map[string]any{"country": "us", "currency": "usd", "subtotal": "5", "force_challenge": true}, flight)
	s.Require().Equal(domain.GenerationNext, session.Generation)
	path := basePath(session.ID)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, path+"/payment-instrument", map[string]any{
		"payment_method_family": "ewallet",
		"payment_method_type":   "paypal",
	})
	testutil.WithFlights(req, flight)
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	piid := testutil.UnmarshalResponse[SessionResponse](s.T(), rr).Session.AttachedPIID()

	confirmReq := testutil.NewJSONRequest(s.T(), http.MethodPost, path+"/confirm", map[string]any{
		"piid":                  piid,
		"partner":               "XboxNative",
		"challenge_window_size": "02",
	})
	testutil.WithFlights(confirmReq, flight)
	rr = testutil.DoRequest(s.router, confirmReq)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	resp := testutil.UnmarshalResponse[ConfirmResponse](s.T(), rr)
	s.True(resp.ChallengeRendered)
	s.Equal(models.ClientActionPidl, resp.ClientAction.Type)
	s.Require().Len(resp.ClientAction.Resources, 1)

	doc := resp.ClientAction.Resources[0]
	s.Equal("xboxNative", doc.ClientSettings["styleProfile"])
	frames := doc.HintByID(pidlmodels.HintIDChallengeFrame)
	s.Require().Len(frames, 1)
	s.Equal("390", frames[0].Tags[pidlmodels.TagWidth])
	s.Equal("400", frames[0].Tags[pidlmodels.TagHeight])
}

// =============================================================================
// Failure mapping
// =============================================================================

func (s *HandlerSuite) TestEmptyEmailIsValidationError() {
	session := s.createSession(map[string]any{"country": "us", "currency": "usd", "subtotal": "5"})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, basePath(session.ID)+"/profile", map[string]any{"email": "   "})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
}

func (s *HandlerSuite) TestRejectedAddressCarriesValidatorStatus() {
	session := s.createSession(map[string]any{"country": "us", "currency": "usd", "subtotal": "5"})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, basePath(session.ID)+"/address", map[string]any{
		"address": map[string]any{"address_line1": "1 Main St", "city": "Seattle", "postal_code": "ABCDE", "country": "us"},
	})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "InvalidPostalCode")
	s.Equal("address", testutil.UnmarshalErrorResponse(s.T(), rr)["component"])
}

func (s *HandlerSuite) TestUnknownSessionIsTaggedNotFound() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/checkout/sessions/cr_missing/profile", map[string]any{"email": "a@b.c"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	s.Equal("profile", testutil.UnmarshalErrorResponse(s.T(), rr)["component"])
}

func (s *HandlerSuite) TestConfirmWithoutPIID() {
	session := s.createSession(map[string]any{"country": "us", "currency": "usd", "subtotal": "5"})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, basePath(session.ID)+"/confirm", map[string]any{"piid": ""})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
}

func (s *HandlerSuite) TestRequestValidation() {
	cases := []struct {
		name string
		path string
		body map[string]any
	}{
		{"unknown family", "/checkout/sessions/cr_1/payment-instrument", map[string]any{"payment_method_family": "barter", "payment_method_type": "goats"}},
		{"missing type", "/checkout/sessions/cr_1/payment-instrument", map[string]any{"payment_method_family": "credit_card"}},
		{"bad address type", "/checkout/sessions/cr_1/address", map[string]any{"address_type": "mailing"}},
		{"bad generation", "/checkout/sessions/cr_1/profile", map[string]any{"email": "a@b.c", "api_generation": "v3"}},
		{"bad currency", "/checkout/sessions", map[string]any{"country": "us", "currency": "dollars"}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := testutil.NewJSONRequest(s.T(), http.MethodPost, tc.path, tc.body)
			rr := testutil.DoRequest(s.router, req)
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
		})
	}
}

func (s *HandlerSuite) TestCreditCardWithoutAccountIsRejectedBeforePosting() {
	session := s.createSession(map[string]any{"country": "us", "currency": "usd", "subtotal": "5"})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, basePath(session.ID)+"/payment-instrument", map[string]any{
		"payment_method_family": "credit_card",
		"payment_method_type":   "visa",
	})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
}

func (s *HandlerSuite) TestConfirmIsRateLimited() {
	limiter := ratelimit.New(ratelimit.NewInMemoryStore(), s.logger,
		ratelimit.WithLimit(ratelimit.ClassConfirm, ratelimit.Limit{Requests: 1, Window: time.Minute}),
	)
	router := chi.NewRouter()
	router.Use(metadata.RequestID, metadata.ClientMetadata, metadata.Flights)
	New(s.svc, s.logger, WithRateLimiter(limiter)).Register(router)

	confirm := func() int {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/checkout/sessions/cr_1/confirm", map[string]any{"piid": ""})
		return testutil.DoRequest(router, req).Code
	}
	s.Equal(http.StatusBadRequest, confirm())
	s.Equal(http.StatusTooManyRequests, confirm())

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/checkout/sessions/cr_1/profile", map[string]any{"email": " "})
	rr := testutil.DoRequest(router, req)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.NotEmpty(rr.Header().Get("X-RateLimit-Remaining"))
}

func (s *HandlerSuite) TestCompositeBlankProfileNamesComponent() {
	session := s.createSession(map[string]any{"country": "us", "currency": "usd", "subtotal": "5"})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, basePath(session.ID)+"/payment-instrument", map[string]any{
		"payment_method_family": "ewallet",
		"payment_method_type":   "paypal",
		"profile":               "  ",
		"address":               map[string]any{"address": map[string]any{"address_line1": "1 Main St", "city": "Seattle", "postal_code": "98101", "country": "us"}},
	})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	s.Equal("profile", testutil.UnmarshalErrorResponse(s.T(), rr)["component"])
}
