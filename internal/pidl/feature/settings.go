package feature

import (
	"maps"
	"slices"
	"strings"
)

// Setting is one row of a partner's feature table.
type Setting struct {
	// Markets restricts the feature to these countries; empty means all.
	Markets []string          `json:"markets,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

// AppliesTo reports whether the setting enables its feature for country.
func (s Setting) AppliesTo(country string) bool {
	if len(s.Markets) == 0 {
		return true
	}
	for _, m := range s.Markets {
		if strings.EqualFold(m, country) {
			return true
		}
	}
	return false
}

// Param returns the named parameter or fallback when absent or blank.
func (s Setting) Param(key, fallback string) string {
	if v := strings.TrimSpace(s.Params[key]); v != "" {
		return v
	}
	return fallback
}

// PartnerConfig is a partner's feature table. A nil table means the partner
// has not opted into table-driven configuration.
type PartnerConfig map[Name]Setting

func (pc PartnerConfig) clone() PartnerConfig {
	if pc == nil {
		return nil
	}
	out := make(PartnerConfig, len(pc))
	for name, s := range pc {
		out[name] = Setting{Markets: slices.Clone(s.Markets), Params: maps.Clone(s.Params)}
	}
	return out
}
