package validation_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	cases := map[string]bool{
		"ana@example.com":     true,
		"a.b+c@sub.domain.co": true,
		"sin-arroba.com":      false,
		"ana@dominio":         false,
		"ana @example.com":    false,
		"":                    false,
	}
	for in, want := range cases {
		assert.Equal(t, want, validation.Email(in), in)
	}
}

func TestPhone(t *testing.T) {
	cases := map[string]bool{
		"+57 300 123 4567": true,
		"(601) 555-1234":   true,
		"3001234567":       true,
		"+":                false,
		"300-ABC":          false,
		"":                 false,
	}
	for in, want := range cases {
		assert.Equal(t, want, validation.Phone(in), in)
	}
}

func TestRequired_NombraElCampo(t *testing.T) {
	err := validation.Required("", "Client ID")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Client ID is required", err.Error())

	assert.NoError(t, validation.Required("x", "Client ID"))
}

func TestNumeros(t *testing.T) {
	assert.NoError(t, validation.NonNegative(decimal.Zero, "Cost"))
	err := validation.NonNegative(decimal.NewFromInt(-1), "Cost")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Cost")

	assert.NoError(t, validation.NonNegativeInt(0, "Stock"))
	assert.Error(t, validation.NonNegativeInt(-3, "Stock"))

	assert.NoError(t, validation.Positive(1, "Item quantity"))
	assert.Error(t, validation.Positive(0, "Item quantity"))
}

type sampleRequest struct {
	Token string `json:"token" validate:"required"`
	Email string `json:"email" validate:"omitempty,email_address"`
	Phone string `json:"phoneNumber" validate:"omitempty,phone"`
}

func TestStruct_UsaNombreJSON(t *testing.T) {
	err := validation.Struct(sampleRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "token is required", err.Error())

	err = validation.Struct(sampleRequest{Token: "t", Email: "malo"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email format", err.Error())

	err = validation.Struct(sampleRequest{Token: "t", Phone: "abc"})
	require.Error(t, err)
	assert.Equal(t, "Invalid phone number format", err.Error())

	assert.NoError(t, validation.Struct(sampleRequest{Token: "t", Email: "a@b.co", Phone: "+1 555"}))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hola", validation.Sanitize("  hola \n"))
	assert.Equal(t, "ABC-12", validation.Upper(" abc-12 "))
	assert.Equal(t, "ana@example.com", validation.Lower(" Ana@Example.COM "))
}
