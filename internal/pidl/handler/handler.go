package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"checkout/internal/pidl/builder"
	"checkout/internal/pidl/feature"
	"checkout/internal/pidl/models"
	"checkout/pkg/platform/httputil"
	pstrings "checkout/pkg/platform/strings"
	"checkout/pkg/requestcontext"
)

// Renderer applies the composition pipeline to base documents.
type Renderer interface {
	Render(docs []*models.ResourceDocument, c feature.Context) ([]*models.ResourceDocument, *feature.Decisions)
}

// PartnerSettings resolves a partner's feature table; nil selects static mode.
type PartnerSettings interface {
	Resolve(ctx context.Context, partner string) feature.PartnerConfig
}

// Handler wires document rendering endpoints to the pipeline.
type Handler struct {
	renderer Renderer
	settings PartnerSettings
	logger   *slog.Logger
}

// New constructs a render handler. settings may be nil.
func New(renderer Renderer, settings PartnerSettings, logger *slog.Logger) *Handler {
	return &Handler{
		renderer: renderer,
		settings: settings,
		logger:   logger,
	}
}

// Register mounts render endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/pidl/render", h.HandleRender)
}

// HandleRender handles POST /pidl/render requests.
func (h *Handler) HandleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[RenderRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	var partnerConfig feature.PartnerConfig
	if h.settings != nil {
		partnerConfig = h.settings.Resolve(ctx, req.Partner)
	}

	methods := make([]feature.PaymentMethod, 0, len(req.PaymentMethods))
	for _, pm := range req.PaymentMethods {
		methods = append(methods, feature.PaymentMethod{Family: pm.Family, Type: pm.Type})
	}
	fc := feature.NewContext(feature.Params{
		Partner:        req.Partner,
		Country:        req.Country,
		Language:       req.Language,
		Operation:      req.Operation,
		Scenario:       req.Scenario,
		ResourceType:   req.ResourceType,
		Flights:        pstrings.DedupeAndTrimLower(slices.Concat(requestcontext.Flights(ctx), req.Flights)),
		PaymentMethods: methods,
		IsGuestAccount: req.IsGuest,
		PartnerConfig:  partnerConfig,
	})

	docs, decisions := h.renderer.Render(baseDocuments(req), fc)

	h.logger.InfoContext(ctx, "pidl documents rendered",
		"request_id", requestID,
		"partner", req.Partner,
		"resource_type", req.ResourceType,
		"features", len(decisions.Applied()),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, toRenderResponse(docs, decisions))
}

func baseDocuments(req *RenderRequest) []*models.ResourceDocument {
	switch req.ResourceType {
	case ResourcePaymentMethodSelect:
		return []*models.ResourceDocument{builder.PaymentMethodSelectDocument(req.Country, req.PaymentMethods)}
	case ResourceCreditCard:
		return []*models.ResourceDocument{builder.CreditCardDocument(req.Country, req.Operation)}
	default:
		return []*models.ResourceDocument{builder.AddressDocument(req.Country, req.AddressType, req.Operation)}
	}
}
