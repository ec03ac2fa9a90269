package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func validBeneficiary() *Beneficiary {
	return &Beneficiary{
		NationalID: "12345678-9",
		FirstName:  "Rosa",
		LastName:   "Contreras",
		BirthDate:  time.Date(1950, 5, 10, 0, 0, 0, 0, time.UTC),
		Address:    "Av. Los Aromos 123, Valparaíso",
		Phone:      "+56912345678",
	}
}

func TestValidateBeneficiaryAgeBoundary(t *testing.T) {
	b := validBeneficiary()

	// Exactly 60 today: allowed.
	b.BirthDate = now.AddDate(-60, 0, 0)
	require.NoError(t, ValidateBeneficiary(b, now))

	// Turns 60 tomorrow: still 59, rejected.
	b.BirthDate = now.AddDate(-60, 0, 1)
	err := ValidateBeneficiary(b, now)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "birth_date", ve.Field)
}

func TestValidateBeneficiaryImplausibleAge(t *testing.T) {
	b := validBeneficiary()
	b.BirthDate = now.AddDate(-121, 0, 0)
	err := ValidateBeneficiary(b, now)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidateBeneficiaryNationalID(t *testing.T) {
	cases := map[string]bool{
		"12345678-9":   true,
		"1234567-K":    true,
		"1234567-k":    true,
		"12345678":     false,
		"123456-9":     false,
		"12.345.678-9": false,
	}
	for id, ok := range cases {
		b := validBeneficiary()
		b.NationalID = id
		err := ValidateBeneficiary(b, now)
		if ok {
			assert.NoError(t, err, id)
		} else {
			assert.Error(t, err, id)
		}
	}
}

func TestValidateRequestFields(t *testing.T) {
	desc := "Needs help with weekly groceries and pharmacy."
	require.NoError(t, ValidateRequestFields("Groceries", desc, "Shopping", PriorityMedium, nil, now))

	err := ValidateRequestFields("Groceries", "too short", "Shopping", PriorityMedium, nil, now)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	err = ValidateRequestFields("Groceries", desc, "Shopping", "SOON", nil, now)
	require.Error(t, err)

	past := now.AddDate(0, 0, -1)
	err = ValidateRequestFields("Groceries", desc, "Shopping", PriorityMedium, &past, now)
	require.Error(t, err)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateRequestFields("Groceries", desc, "Shopping", PriorityMedium, &today, now))
}

func TestValidateMotivation(t *testing.T) {
	require.Error(t, ValidateMotivation("I want to help", 30))
	require.NoError(t, ValidateMotivation("I live nearby and have helped elderly neighbours before.", 30))
	// Zero minimum falls back to the default.
	require.Error(t, ValidateMotivation("short", 0))
}

func TestAgeAt(t *testing.T) {
	b := &Beneficiary{BirthDate: time.Date(1960, 8, 31, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 66, b.AgeAt(now))
	assert.Equal(t, 65, b.AgeAt(now.AddDate(0, 0, -1)))
}

func TestRequestIsParticipant(t *testing.T) {
	vol := "vol-1"
	r := &Request{CreatorID: "req-1", AssignedVolunteerID: &vol}
	assert.True(t, r.IsParticipant("req-1"))
	assert.True(t, r.IsParticipant("vol-1"))
	assert.False(t, r.IsParticipant("vol-2"))

	unassigned := &Request{CreatorID: "req-1"}
	assert.False(t, unassigned.IsParticipant("vol-1"))
}
