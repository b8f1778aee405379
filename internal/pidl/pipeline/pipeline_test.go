package pipeline

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"checkout/internal/pidl/builder"
	"checkout/internal/pidl/feature"
	"checkout/internal/pidl/metrics"
	"checkout/internal/pidl/models"
)

// =============================================================================
// Composition Pipeline Test Suite
// =============================================================================
// Justification for unit tests: the pipeline must be idempotent, run features
// in registration order, and leave non-targeted elements untouched. These are
// structural properties of the decorated documents, asserted directly here.

type PipelineSuite struct {
	suite.Suite
	pipeline *Pipeline
	metrics  *metrics.Metrics
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func (s *PipelineSuite) SetupTest() {
	s.metrics = metrics.New(prometheus.NewRegistry())
	p, err := New(
		feature.NewRegistry(
			feature.WithGroupedSelectPartners("windowsstore"),
			feature.WithXboxNativePartners("xboxnative"),
		),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.pipeline = p
}

func methods() []builder.PaymentMethodOption {
	return []builder.PaymentMethodOption{
		{Family: "credit_card", Type: "visa", DisplayName: "Visa"},
		{Family: "ewallet", Type: "paypal", DisplayName: "PayPal"},
		{Family: "credit_card", Type: "amex", DisplayName: "American Express"},
		{Family: "direct_debit", Type: "sepa", DisplayName: "SEPA"},
	}
}

func selectDocs() []*models.ResourceDocument {
	return []*models.ResourceDocument{builder.PaymentMethodSelectDocument("us", methods())}
}

func addDocs(country string) []*models.ResourceDocument {
	return []*models.ResourceDocument{
		builder.CreditCardDocument(country, "add"),
		builder.AddressDocument(country, "shipping", "add"),
	}
}

func (s *PipelineSuite) TestNew() {
	s.Run("nil registry returns error", func() {
		_, err := New(nil)
		s.Require().Error(err)
		s.Contains(err.Error(), "feature registry is required")
	})
}

// =============================================================================
// Idempotence
// =============================================================================

func (s *PipelineSuite) TestApplyTwiceEqualsApplyOnce() {
	contexts := map[string]feature.Context{
		"grouped select": feature.NewContext(feature.Params{Partner: "windowsstore", Operation: "select"}),
		"xbox native":    feature.NewContext(feature.Params{Partner: "xboxnative", Operation: "add"}),
		"all flights": feature.NewContext(feature.Params{
			Partner:        "cart",
			Country:        "cn",
			Operation:      "update",
			IsGuestAccount: true,
			Flights: []string{
				feature.FlightRemoveCancelButton,
				feature.FlightCustomSubmitButtonText,
				feature.FlightAddAllFieldsRequiredText,
			},
		}),
		"table driven": feature.NewContext(feature.Params{
			Partner: "cart",
			Country: "cn",
			PartnerConfig: feature.PartnerConfig{
				feature.PaymentMethodGrouping:   {},
				feature.CustomizeGroupedDisplay: {},
				feature.RewriteLogoHost:         {Params: map[string]string{"host": "https://cdn.example.cn/"}},
			},
		}),
		"regional path host": feature.NewContext(feature.Params{
			Partner: "cart",
			Country: "cn",
			PartnerConfig: feature.PartnerConfig{
				feature.RewriteLogoHost: {Params: map[string]string{"host": feature.DefaultLogoHost + "cn/"}},
			},
		}),
	}

	for name, c := range contexts {
		s.Run(name, func() {
			for _, build := range []func() []*models.ResourceDocument{selectDocs, func() []*models.ResourceDocument { return addDocs("cn") }} {
				once := build()
				twice := build()

				s.pipeline.Apply(once, c)
				s.pipeline.Apply(twice, c)
				s.pipeline.Apply(twice, c)

				s.Equal(once, twice)
			}
		})
	}
}

// =============================================================================
// Ordering
// =============================================================================

func (s *PipelineSuite) TestGroupingRunsBeforeDisplayCustomization() {
	docs := selectDocs()
	c := feature.NewContext(feature.Params{Partner: "windowsstore", Operation: "select"})

	decisions := s.pipeline.Apply(docs, c)

	s.Equal([]feature.Name{feature.PaymentMethodGrouping, feature.CustomizeGroupedDisplay}, decisions.Applied())

	selectHint := docs[0].HintByID(models.HintIDPaymentMethodSelect)[0]
	s.Equal(models.LayoutGroupedSelect, selectHint.Layout)
	s.Contains(selectHint.StyleHints, "compact")
	s.Require().Len(selectHint.Members, 3)

	s.Equal("group_credit_card", selectHint.Members[0].ID)
	s.Equal("Credit or debit card", selectHint.Members[0].Content)
	s.Equal(selectHint.Members[0].Members[0].SourceURL, selectHint.Members[0].SourceURL)
	s.Equal([]string{"option_visa", "option_amex"}, []string{selectHint.Members[0].Members[0].ID, selectHint.Members[0].Members[1].ID})
	s.Equal("group_ewallet", selectHint.Members[1].ID)
	s.Equal("Digital wallet", selectHint.Members[1].Content)
	s.Equal("group_direct_debit", selectHint.Members[2].ID)

	groups, ok := decisions.Get(feature.PaymentMethodGrouping, "groups")
	s.True(ok)
	s.Equal("3", groups)
}

func (s *PipelineSuite) TestCustomizationWithoutGroupingLeavesDropdown() {
	docs := selectDocs()
	c := feature.NewContext(feature.Params{Partner: "windowsstore", Operation: "add"})

	decisions := s.pipeline.Apply(docs, c)

	s.Equal([]feature.Name{feature.CustomizeGroupedDisplay}, decisions.Applied())
	selectHint := docs[0].HintByID(models.HintIDPaymentMethodSelect)[0]
	s.Equal(models.LayoutDropdown, selectHint.Layout)
	s.Empty(selectHint.StyleHints)
	s.Len(selectHint.Members, 4)
	_, ok := decisions.Get(feature.CustomizeGroupedDisplay, "labelled")
	s.False(ok)
}

func (s *PipelineSuite) TestAppliedOrderFollowsRegistry() {
	c := feature.NewContext(feature.Params{
		Partner:   "xboxnative",
		Country:   "cn",
		Operation: "update",
		Flights: []string{
			feature.FlightAddAllFieldsRequiredText,
			feature.FlightRemoveCancelButton,
			feature.FlightCustomSubmitButtonText,
		},
		IsGuestAccount: true,
	})

	decisions := s.pipeline.Apply(addDocs("cn"), c)

	s.Equal([]feature.Name{
		feature.XboxNativeStyleHints,
		feature.DisableCountryDropdown,
		feature.HideSaveAddressForGuest,
		feature.RemoveCancelButton,
		feature.RewriteLogoHost,
		feature.CustomSubmitButtonText,
		feature.AddAllFieldsRequiredText,
	}, decisions.Applied())
}

// =============================================================================
// Mutations
// =============================================================================

func (s *PipelineSuite) TestElementMutations() {
	s.Run("disable country locks hint and data description", func() {
		docs := addDocs("us")
		s.pipeline.Apply(docs, feature.NewContext(feature.Params{Operation: "update"}))

		for _, doc := range docs {
			for _, h := range doc.HintsForProperty(models.PropertyCountry) {
				s.True(h.Disabled)
			}
		}
		s.False(docs[0].Property("details", "address", models.PropertyCountry).IsUpdatable)
		s.False(docs[1].Property(models.PropertyCountry).IsUpdatable)
		s.True(docs[1].Property("city").IsUpdatable)
	})

	s.Run("guest hides save address without removing it", func() {
		docs := addDocs("us")
		s.pipeline.Apply(docs, feature.NewContext(feature.Params{IsGuestAccount: true}))

		hints := docs[1].HintByID(models.HintIDSaveAddress)
		s.Require().Len(hints, 1)
		s.True(hints[0].Hidden)
	})

	s.Run("remove cancel keeps sibling order", func() {
		docs := addDocs("us")
		s.pipeline.Apply(docs, feature.NewContext(feature.Params{Flights: []string{feature.FlightRemoveCancelButton}}))

		for _, doc := range docs {
			s.Empty(doc.HintByID(models.HintIDCancel))
		}
		page := docs[1].DisplayPages[0]
		last := page.Members[len(page.Members)-1]
		s.Equal(models.HintIDSubmit, last.ID)
		s.Equal(models.HintIDSaveAddress, page.Members[len(page.Members)-2].ID)
	})

	s.Run("submit text from partner table", func() {
		docs := addDocs("us")
		s.pipeline.Apply(docs, feature.NewContext(feature.Params{
			PartnerConfig: feature.PartnerConfig{
				feature.CustomSubmitButtonText: {Params: map[string]string{"text": "Pay now"}},
			},
		}))
		for _, h := range docs[0].HintByID(models.HintIDSubmit) {
			s.Equal("Pay now", h.Content)
		}
	})

	s.Run("required notice prepended once per document", func() {
		docs := addDocs("us")
		c := feature.NewContext(feature.Params{Flights: []string{feature.FlightAddAllFieldsRequiredText}})
		s.pipeline.Apply(docs, c)

		first := docs[0].DisplayPages[0].Members[0]
		s.Equal(models.HintIDAllFieldsRequired, first.ID)
		s.Equal(models.HintText, first.Type)
		s.Equal("accountHolderName", docs[0].DisplayPages[0].Members[1].ID)
	})

	s.Run("logo host rewritten for china", func() {
		docs := selectDocs()
		s.pipeline.Apply(docs, feature.NewContext(feature.Params{Country: "cn"}))

		for _, option := range docs[0].HintByID(models.HintIDPaymentMethodSelect)[0].Members {
			s.Contains(option.SourceURL, feature.ChinaLogoHost)
		}
	})

	s.Run("xbox native adds style hints and payload", func() {
		docs := addDocs("us")
		decisions := s.pipeline.Apply(docs, feature.NewContext(feature.Params{Partner: "xboxnative"}))

		s.Equal("xboxNative", docs[0].ClientSettings["styleProfile"])
		s.Contains(docs[0].HintByID(models.HintIDSubmit)[0].StyleHints, "gamepad-focusable")
		s.Contains(docs[0].HintByID("accountToken")[0].StyleHints, "native-input")
		s.Empty(docs[0].HintByID("expiryGroup")[0].StyleHints)
		profile, _ := decisions.Get(feature.XboxNativeStyleHints, "styleProfile")
		s.Equal("xboxNative", profile)
	})
}

func (s *PipelineSuite) TestChallengeWindow() {
	render := func(size string) (*models.DisplayHint, *feature.Decisions) {
		docs := []*models.ResourceDocument{builder.ChallengeDocument(builder.ChallengeInput{
			SessionID: "cr_1", PIID: "pi_1", Amount: "10.00", Currency: "usd", WindowSize: size,
		})}
		d := s.pipeline.Apply(docs, feature.NewContext(feature.Params{ResourceType: "challenge", WindowSize: size}))
		return docs[0].HintByID(models.HintIDChallengeFrame)[0], d
	}

	s.Run("known size", func() {
		frame, d := render("02")
		s.Equal("390", frame.Tags[models.TagWidth])
		s.Equal("400", frame.Tags[models.TagHeight])
		size, _ := d.Get(feature.ChallengeWindowHints, "windowSize")
		s.Equal("02", size)
	})

	s.Run("unknown size falls back to full page", func() {
		frame, d := render("09")
		s.Equal("100%", frame.Tags[models.TagWidth])
		size, _ := d.Get(feature.ChallengeWindowHints, "windowSize")
		s.Equal("05", size)
	})
}

func (s *PipelineSuite) TestNonTargetedElementsUntouched() {
	docs := addDocs("us")
	reference := addDocs("us")
	s.pipeline.Apply(docs, feature.NewContext(feature.Params{Flights: []string{feature.FlightRemoveCancelButton}}))

	s.Equal(reference[0].DataDescription, docs[0].DataDescription)
	s.Equal(reference[0].HintByID("expiryGroup"), docs[0].HintByID("expiryGroup"))
	s.Equal(reference[1].HintByID(models.HintIDSaveAddress), docs[1].HintByID(models.HintIDSaveAddress))
}

func (s *PipelineSuite) TestNilDocumentsIgnored() {
	docs := []*models.ResourceDocument{nil, builder.AddressDocument("us", "billing", "add")}
	s.NotPanics(func() {
		s.pipeline.Apply(docs, feature.NewContext(feature.Params{IsGuestAccount: true, Operation: "update"}))
	})
}

func (s *PipelineSuite) TestNilHintsIgnoredByRemoval() {
	cancel := &models.DisplayHint{ID: models.HintIDCancel, Type: models.HintButton}
	doc := &models.ResourceDocument{
		DisplayPages: []*models.DisplayHint{
			nil,
			{ID: "page", Type: models.HintPage, Members: []*models.DisplayHint{nil, cancel}},
		},
	}
	c := feature.NewContext(feature.Params{Flights: []string{feature.FlightRemoveCancelButton}})

	var decisions *feature.Decisions
	s.Require().NotPanics(func() {
		decisions = s.pipeline.Apply([]*models.ResourceDocument{doc}, c)
	})
	s.Empty(doc.HintByID(models.HintIDCancel))
	s.Equal([]*models.DisplayHint{nil}, doc.DisplayPages[1].Members)
	removed, ok := decisions.Get(feature.RemoveCancelButton, "removed")
	s.True(ok)
	s.Equal("true", removed)
}

func (s *PipelineSuite) TestRegionalLogoPathIsNotRepeated() {
	host := feature.DefaultLogoHost + "cn/"
	c := feature.NewContext(feature.Params{
		Country:       "cn",
		PartnerConfig: feature.PartnerConfig{feature.RewriteLogoHost: {Params: map[string]string{"host": host}}},
	})
	docs := selectDocs()
	s.pipeline.Apply(docs, c)
	s.pipeline.Apply(docs, c)

	logos := docs[0].Find(func(h *models.DisplayHint) bool { return h.SourceURL != "" })
	s.Require().NotEmpty(logos)
	for _, h := range logos {
		s.True(strings.HasPrefix(h.SourceURL, host+"logos/"), h.SourceURL)
	}
}

func (s *PipelineSuite) TestMetrics() {
	s.pipeline.Apply(selectDocs(), feature.NewContext(feature.Params{Partner: "windowsstore", Operation: "select"}))

	s.Equal(1.0, testutil.ToFloat64(s.metrics.FeaturesApplied.WithLabelValues(string(feature.PaymentMethodGrouping))))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DocumentsRendered.WithLabelValues("paymentMethod")))
}

func (s *PipelineSuite) TestLinkedDocumentsDecorated() {
	docs := addDocs("us")
	s.pipeline.Apply(docs, feature.NewContext(feature.Params{Operation: "update"}))

	linked := docs[0].LinkedDocuments[0]
	s.False(linked.Property(models.PropertyCountry).IsUpdatable)
	s.True(linked.HintsForProperty(models.PropertyCountry)[0].Disabled)
}
