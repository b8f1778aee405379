// Package store persists per-partner feature tables.
package store

import (
	"fmt"
	"strings"

	"checkout/internal/pidl/feature"
	"checkout/pkg/platform/sentinel"
)

// ErrNotFound is returned when a partner has no feature table.
var ErrNotFound = fmt.Errorf("partner settings: %w", sentinel.ErrNotFound)

func normalizePartner(partner string) string {
	return strings.ToLower(strings.TrimSpace(partner))
}

func validate(partner string, cfg feature.PartnerConfig) error {
	if partner == "" {
		return fmt.Errorf("partner is required")
	}
	if cfg == nil {
		return fmt.Errorf("feature table is required")
	}
	return nil
}
