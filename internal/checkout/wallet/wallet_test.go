package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout/internal/checkout/models"
	"checkout/pkg/domain"
	dErrors "checkout/pkg/domain-errors"
)

const googlePayPayload = `{
  "apiVersion": 2,
  "email": "buyer@example.com",
  "paymentMethodData": {
    "type": "CARD",
    "description": "Visa 1111",
    "info": {"cardNetwork": "VISA", "cardDetails": "1111"},
    "tokenizationData": {"type": "PAYMENT_GATEWAY", "token": "{\"signature\":\"abc\"}"}
  },
  "shippingAddress": {
    "name": "Ada Lovelace",
    "address1": "1 Main St",
    "address2": "Apt 2",
    "locality": "Seattle",
    "administrativeArea": "WA",
    "postalCode": "98101",
    "countryCode": "US",
    "phoneNumber": "+1 555 0100"
  }
}`

const applePayPayload = `{
  "token": {
    "paymentData": {"version": "EC_v1", "data": "enc", "signature": "sig"},
    "paymentMethod": {"displayName": "Visa 4242", "network": "Visa", "type": "debit"},
    "transactionIdentifier": "txn-1"
  },
  "shippingContact": {
    "emailAddress": "buyer@example.com",
    "givenName": "Grace",
    "familyName": "Hopper",
    "addressLines": ["10 Market St", "Floor 3"],
    "locality": "London",
    "postalCode": "EC1A 1BB",
    "countryCode": "GB"
  }
}`

func TestIsWalletType(t *testing.T) {
	assert.True(t, IsWalletType("GooglePay"))
	assert.True(t, IsWalletType(" applepay "))
	assert.False(t, IsWalletType("visa"))
	assert.False(t, IsWalletType(""))
}

func TestParseGooglePay(t *testing.T) {
	out, err := Parse("googlepay", []byte(googlePayPayload))
	require.NoError(t, err)

	assert.Equal(t, "buyer@example.com", out.Email)
	assert.Equal(t, domain.FamilyEWallet, out.Draft.Family)
	assert.Equal(t, TypeGooglePay, out.Draft.Type)
	assert.Equal(t, `{"signature":"abc"}`, out.Draft.Details["token"])
	assert.Equal(t, "visa", out.Draft.Details["network"])
	assert.Equal(t, "1111", out.Draft.Details["lastFourDigits"])

	require.NotNil(t, out.Address)
	assert.Equal(t, models.AddressInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		AddressLine1: "1 Main St",
		AddressLine2: "Apt 2",
		City:         "Seattle",
		Region:       "WA",
		PostalCode:   "98101",
		Country:      "us",
		PhoneNumber:  "+1 555 0100",
	}, *out.Address)
}

func TestParseApplePay(t *testing.T) {
	out, err := Parse("applepay", []byte(applePayPayload))
	require.NoError(t, err)

	assert.Equal(t, "buyer@example.com", out.Email)
	assert.Equal(t, TypeApplePay, out.Draft.Type)
	assert.JSONEq(t, `{"version": "EC_v1", "data": "enc", "signature": "sig"}`, out.Draft.Details["token"])
	assert.Equal(t, "visa", out.Draft.Details["network"])
	assert.NotContains(t, out.Draft.Details, "missing")

	require.NotNil(t, out.Address)
	assert.Equal(t, "10 Market St", out.Address.AddressLine1)
	assert.Equal(t, "Floor 3", out.Address.AddressLine2)
	assert.Equal(t, "", out.Address.AddressLine3)
	assert.Equal(t, "gb", out.Address.Country)
	assert.Equal(t, "Grace", out.Address.FirstName)
}

func TestParseWithoutSharedContact(t *testing.T) {
	out, err := Parse("googlepay", []byte(`{"paymentMethodData":{"tokenizationData":{"token":"t"}}}`))
	require.NoError(t, err)
	assert.Empty(t, out.Email)
	assert.Nil(t, out.Address)
	assert.Equal(t, map[string]string{"token": "t"}, out.Draft.Details)
}

func TestParseRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name       string
		methodType string
		payload    string
	}{
		{"not json", "googlepay", `{"email":`},
		{"google missing token", "googlepay", `{"email":"a@b.c"}`},
		{"apple missing payment data", "applepay", `{"token":{"paymentMethod":{}}}`},
		{"apple empty payment data", "applepay", `{"token":{"paymentData":{}}}`},
		{"unknown wallet", "samsungpay", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.methodType, []byte(tc.payload))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}
