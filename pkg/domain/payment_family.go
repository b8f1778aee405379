package domain

import (
	"strings"

	dErrors "checkout/pkg/domain-errors"
)

// PaymentMethodFamily groups payment method types with the same posting rules.
// Construct via ParsePaymentMethodFamily at trust boundaries.
type PaymentMethodFamily string

const (
	FamilyCreditCard  PaymentMethodFamily = "credit_card"
	FamilyEWallet     PaymentMethodFamily = "ewallet"
	FamilyDirectDebit PaymentMethodFamily = "direct_debit"
	FamilyMobileBill  PaymentMethodFamily = "mobile_billing_non_sim"
	FamilyVirtual     PaymentMethodFamily = "virtual"
)

var validFamilies = map[PaymentMethodFamily]bool{
	FamilyCreditCard:  true,
	FamilyEWallet:     true,
	FamilyDirectDebit: true,
	FamilyMobileBill:  true,
	FamilyVirtual:     true,
}

// ParsePaymentMethodFamily validates a family name against the supported set.
func ParsePaymentMethodFamily(s string) (PaymentMethodFamily, error) {
	f := PaymentMethodFamily(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "payment method family is required")
	}
	if !validFamilies[f] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported payment method family: "+s)
	}
	return f, nil
}

func (f PaymentMethodFamily) String() string {
	return string(f)
}

// RequiresAccountBinding reports whether instruments of this family must be
// posted with both a request id and an account id.
func (f PaymentMethodFamily) RequiresAccountBinding() bool {
	return f == FamilyCreditCard
}
