package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tier struct {
	Title     string `json:"title" validate:"required"`
	Revisions *int   `json:"revisions" validate:"required,gte=0"`
	OfferType string `json:"offer_type" validate:"required,oneof=basic standard premium"`
}

type sample struct {
	Email   string `json:"email" validate:"required,email"`
	Kind    string `json:"type" validate:"required,oneof=customer business"`
	Details []tier `json:"details" validate:"dive"`
}

func TestValidate_OK(t *testing.T) {
	rev := 1
	errs := Validate(sample{
		Email:   "a@b.io",
		Kind:    "business",
		Details: []tier{{Title: "x", Revisions: &rev, OfferType: "basic"}},
	})
	assert.Nil(t, errs)
}

func TestValidate_UsesJSONNames(t *testing.T) {
	neg := -1
	errs := Validate(sample{
		Email:   "nope",
		Kind:    "admin",
		Details: []tier{{Revisions: &neg, OfferType: "gold"}},
	})
	require.NotNil(t, errs)

	assert.Equal(t, "Enter a valid email address.", errs["email"])
	assert.Equal(t, `"admin" is not a valid choice.`, errs["type"])
	assert.Equal(t, "This field is required.", errs["details[0].title"])
	assert.Equal(t, "Ensure this value is greater than or equal to 0.", errs["details[0].revisions"])
	assert.Equal(t, `"gold" is not a valid choice.`, errs["details[0].offer_type"])
}

func TestFieldErrors_Error(t *testing.T) {
	err := FieldErrors{"b": "two", "a": "one"}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())
}

func TestBindError(t *testing.T) {
	var dst struct {
		OfferDetailID *int64 `json:"offer_detail_id"`
	}

	err := json.Unmarshal([]byte(`{"offer_detail_id":"x"}`), &dst)
	fields, ok := BindError(err)
	require.True(t, ok)
	assert.Equal(t, FieldErrors{"offer_detail_id": "Invalid value."}, fields)

	_, ok = BindError(json.Unmarshal([]byte(`{"offer_detail_id":`), &dst))
	assert.False(t, ok)
}
