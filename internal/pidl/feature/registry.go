package feature

import "slices"

// Default partner sets used when the caller configures none.
var (
	DefaultGroupedSelectPartners = []string{"windowsstore", "webblends", "oxowebdirect"}
	DefaultXboxNativePartners    = []string{"xboxnative", "xboxsettings", "storify"}
)

// overridable features fall back to their static predicate when a partner
// table omits them.
var overridable = map[Name]struct{}{
	DisableCountryDropdown:   {},
	RemoveCancelButton:       {},
	AddAllFieldsRequiredText: {},
}

// Registry is the ordered, read-only catalogue of features. Build it once at
// startup; it is safe for concurrent use.
type Registry struct {
	ordered []Feature
	byName  map[Name]Feature
}

type registryConfig struct {
	groupedSelect []string
	xboxNative    []string
}

// RegistryOption configures partner sets at construction.
type RegistryOption func(*registryConfig)

// WithGroupedSelectPartners replaces the grouped-select partner set.
func WithGroupedSelectPartners(partners ...string) RegistryOption {
	return func(c *registryConfig) {
		if len(partners) > 0 {
			c.groupedSelect = partners
		}
	}
}

// WithXboxNativePartners replaces the Xbox-native partner set.
func WithXboxNativePartners(partners ...string) RegistryOption {
	return func(c *registryConfig) {
		if len(partners) > 0 {
			c.xboxNative = partners
		}
	}
}

// NewRegistry builds the catalogue. Registration order is execution order:
// grouping precedes the display customization that targets grouped layouts.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{
		groupedSelect: DefaultGroupedSelectPartners,
		xboxNative:    DefaultXboxNativePartners,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	grouped := newPartnerSet(cfg.groupedSelect)
	xbox := newPartnerSet(cfg.xboxNative)

	ordered := []Feature{
		paymentMethodGrouping{partners: grouped},
		customizeGroupedDisplay{partners: grouped},
		xboxNativeStyleHints{partners: xbox},
		disableCountryDropdown{},
		hideSaveAddressForGuest{},
		removeCancelButton{},
		rewriteLogoHost{},
		customSubmitButtonText{},
		challengeWindowHints{},
		addAllFieldsRequiredText{},
	}
	byName := make(map[Name]Feature, len(ordered))
	for _, f := range ordered {
		byName[f.Name()] = f
	}
	return &Registry{ordered: ordered, byName: byName}
}

// Features returns the catalogue in registration order.
func (r *Registry) Features() []Feature {
	return slices.Clone(r.ordered)
}

// Lookup finds a feature by name.
func (r *Registry) Lookup(name Name) (Feature, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Overridable reports whether name keeps its static predicate under a
// partner table that omits it.
func (r *Registry) Overridable(name Name) bool {
	_, ok := overridable[name]
	return ok
}

// Enabled decides applicability of f for c under either mode.
func (r *Registry) Enabled(f Feature, c Context) bool {
	if !c.TableDriven() {
		return f.Applicable(c)
	}
	if setting, ok := c.Setting(f.Name()); ok {
		return setting.AppliesTo(c.Country())
	}
	return r.Overridable(f.Name()) && f.Applicable(c)
}

// Select returns the features enabled for c, in registration order.
func (r *Registry) Select(c Context) []Feature {
	var out []Feature
	for _, f := range r.ordered {
		if r.Enabled(f, c) {
			out = append(out, f)
		}
	}
	return out
}
