package domain

import (
	"strings"

	dErrors "checkout/pkg/domain-errors"
)

// APIGeneration selects which session API backs a request. Exactly one
// generation is active per request.
type APIGeneration string

const (
	// GenerationLegacy routes session operations to the CheckoutRequest API.
	GenerationLegacy APIGeneration = "checkout_request"
	// GenerationNext routes session operations to the PaymentRequest API.
	GenerationNext APIGeneration = "payment_request"
)

// ParseAPIGeneration validates a generation name from configuration or headers.
func ParseAPIGeneration(s string) (APIGeneration, error) {
	switch APIGeneration(strings.ToLower(strings.TrimSpace(s))) {
	case GenerationLegacy:
		return GenerationLegacy, nil
	case GenerationNext:
		return GenerationNext, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown api generation: "+s)
	}
}

// GenerationFor resolves the generation from the next-generation flag.
func GenerationFor(useNextGen bool) APIGeneration {
	if useNextGen {
		return GenerationNext
	}
	return GenerationLegacy
}

func (g APIGeneration) String() string {
	return string(g)
}
