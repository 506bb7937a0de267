package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutForm struct {
	FirstName string `validate:"required"`
	Email     string `validate:"required,email"`
	Quantity  int    `validate:"gte=1"`
}

func TestValidate_Valid(t *testing.T) {
	form := checkoutForm{FirstName: "Ada", Email: "ada@example.com", Quantity: 2}
	assert.NoError(t, Validate(form))
}

func TestValidate_MissingRequired(t *testing.T) {
	form := checkoutForm{Email: "ada@example.com", Quantity: 1}
	err := Validate(form)

	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "FirstName")
	assert.Contains(t, vErr.Error(), "is required")
}

func TestValidate_InvalidEmail(t *testing.T) {
	form := checkoutForm{FirstName: "Ada", Email: "not-an-email", Quantity: 1}
	err := Validate(form)

	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "must be a valid email address", vErr.Fields()["Email"])
}

func TestValidate_NumericBound(t *testing.T) {
	form := checkoutForm{FirstName: "Ada", Email: "ada@example.com", Quantity: 0}
	err := Validate(form)

	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields()["Quantity"], "greater than or equal to 1")
}

func TestValidationError_FieldsCollectsAll(t *testing.T) {
	form := checkoutForm{}
	err := Validate(form)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields(), 3)
}
