package feature

import "checkout/internal/pidl/models"

var familyLabels = map[string]string{
	"credit_card":            "Credit or debit card",
	"ewallet":                "Digital wallet",
	"direct_debit":           "Bank account",
	"mobile_billing_non_sim": "Mobile phone",
	"virtual":                "Other ways to pay",
}

// paymentMethodGrouping turns the flat payment-method dropdown into a
// grouped select, one group per payment family.
type paymentMethodGrouping struct{ partners partnerSet }

func (paymentMethodGrouping) Name() Name { return PaymentMethodGrouping }
func (paymentMethodGrouping) sealed()    {}

func (f paymentMethodGrouping) Applicable(c Context) bool {
	return f.partners.contains(c.Partner()) && c.Operation() == "select"
}

func (paymentMethodGrouping) Actions() []Action {
	return []Action{groupPaymentMethods}
}

func groupPaymentMethods(docs []*models.ResourceDocument, _ Context, d *Decisions) {
	eachDoc(docs, func(doc *models.ResourceDocument) {
		for _, h := range doc.HintByID(models.HintIDPaymentMethodSelect) {
			if h.Layout != models.LayoutDropdown {
				continue
			}
			var order []string
			groups := make(map[string]*models.DisplayHint)
			for _, option := range h.Members {
				family := option.Tags[models.TagFamily]
				if family == "" {
					family = "other"
				}
				g, ok := groups[family]
				if !ok {
					g = &models.DisplayHint{
						ID:   "group_" + family,
						Type: models.HintGroup,
						Tags: map[string]string{models.TagFamily: family},
					}
					groups[family] = g
					order = append(order, family)
				}
				g.Members = append(g.Members, option)
			}
			members := make([]*models.DisplayHint, 0, len(order))
			for _, family := range order {
				members = append(members, groups[family])
			}
			h.Members = members
			h.Layout = models.LayoutGroupedSelect
			d.Set(PaymentMethodGrouping, "groups", itoa(len(members)))
		}
	})
}

// customizeGroupedDisplay labels the groups produced by paymentMethodGrouping.
// It only targets grouped layouts, so it must run after the grouping.
type customizeGroupedDisplay struct{ partners partnerSet }

func (customizeGroupedDisplay) Name() Name { return CustomizeGroupedDisplay }
func (customizeGroupedDisplay) sealed()    {}

func (f customizeGroupedDisplay) Applicable(c Context) bool {
	return f.partners.contains(c.Partner())
}

func (customizeGroupedDisplay) Actions() []Action {
	return []Action{labelGroups, compactGroupedSelect}
}

func labelGroups(docs []*models.ResourceDocument, _ Context, d *Decisions) {
	eachDoc(docs, func(doc *models.ResourceDocument) {
		for _, h := range groupedSelects(doc) {
			for _, g := range h.Members {
				if g.Type != models.HintGroup {
					continue
				}
				if g.Content == "" {
					label, ok := familyLabels[g.Tags[models.TagFamily]]
					if !ok {
						label = familyLabels["virtual"]
					}
					g.Content = label
				}
				if g.SourceURL == "" && len(g.Members) > 0 {
					g.SourceURL = g.Members[0].SourceURL
				}
			}
			d.Set(CustomizeGroupedDisplay, "labelled", "true")
		}
	})
}

func compactGroupedSelect(docs []*models.ResourceDocument, _ Context, _ *Decisions) {
	eachDoc(docs, func(doc *models.ResourceDocument) {
		for _, h := range groupedSelects(doc) {
			h.AddStyleHint("compact")
		}
	})
}

func groupedSelects(doc *models.ResourceDocument) []*models.DisplayHint {
	return doc.Find(func(h *models.DisplayHint) bool {
		return h.Layout == models.LayoutGroupedSelect
	})
}
