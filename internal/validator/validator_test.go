package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusPayload struct {
	Status string `json:"status" validate:"required,is-membership-status"`
}

func TestCustomStatusRule(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&statusPayload{Status: "On Hold"}))

	err := v.Validate(&statusPayload{Status: "Frozen"})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "status", "field is reported under its json name")
}

func TestRequiredStillAppliesToEmptyValues(t *testing.T) {
	v := New()

	err := v.Validate(&statusPayload{})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["status"])
}

type methodPayload struct {
	Method string `json:"method" validate:"omitempty,is-payment-method"`
}

func TestOptionalEnumPassesWhenEmpty(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&methodPayload{}))
	require.NoError(t, v.Validate(&methodPayload{Method: "Bank Transfer"}))
	require.Error(t, v.Validate(&methodPayload{Method: "Barter"}))
}
