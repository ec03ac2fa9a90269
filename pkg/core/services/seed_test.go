package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

func TestSeed(t *testing.T) {
	store := newFakeStore()

	result, err := Seed(context.Background(), store, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 5, result.Users)
	assert.Equal(t, 3, result.Beneficiaries)
	assert.Equal(t, 4, result.Requests)
	assert.Equal(t, 3, result.Applications)
	assert.Equal(t, 2, result.Messages)

	// Exactly one request was matched, with the competing application
	// auto-rejected.
	var assigned, pending int
	for _, r := range store.requests {
		switch r.Status {
		case model.RequestAssigned:
			assigned++
		case model.RequestPending:
			pending++
		}
	}
	assert.Equal(t, 1, assigned)
	assert.Equal(t, 3, pending)

	var accepted, rejected int
	for _, a := range store.applications {
		switch a.Status {
		case model.ApplicationAccepted:
			accepted++
		case model.ApplicationRejected:
			rejected++
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, rejected)
}

func TestSeedRefusesNonEmptyDatabase(t *testing.T) {
	store := newFakeStore()
	addUser(t, store, model.RoleRequester)

	_, err := Seed(context.Background(), store, testLogger())
	require.Error(t, err)
}
