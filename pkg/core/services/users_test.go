package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

func TestRegisterUser(t *testing.T) {
	store := newFakeStore()

	user, err := RegisterUser(context.Background(), store, testLogger(), RegisterUserParams{
		Name:  "María González",
		Email: "maria@example.cl",
		Role:  model.RoleRequester,
		Phone: "+56912345678",
	})
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.True(t, user.IsRequester())

	// One account, one role.
	_, err = RegisterUser(context.Background(), store, testLogger(), RegisterUserParams{
		Name:  "Rol inválido",
		Email: "rol@example.cl",
		Role:  "ADMIN",
	})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	store := newFakeStore()

	_, err := RegisterUser(context.Background(), store, testLogger(), RegisterUserParams{
		Name:  "María González",
		Email: "maria@example.cl",
		Role:  model.RoleRequester,
	})
	require.NoError(t, err)

	_, err = RegisterUser(context.Background(), store, testLogger(), RegisterUserParams{
		Name:  "Otra María",
		Email: "maria@example.cl",
		Role:  model.RoleVolunteer,
	})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestRegisterBeneficiary(t *testing.T) {
	store := newFakeStore()
	requester := addUser(t, store, model.RoleRequester)

	beneficiary, err := RegisterBeneficiary(context.Background(), store, testLogger(), requester.ID, RegisterBeneficiaryParams{
		NationalID: "6543210-5",
		FirstName:  "Rosa",
		LastName:   "Fuentes",
		BirthDate:  time.Date(1942, time.March, 15, 0, 0, 0, 0, time.UTC),
		Address:    "Av. Los Aromos 118",
	})
	require.NoError(t, err)
	assert.True(t, beneficiary.Active)
	assert.Equal(t, "Rosa Fuentes", beneficiary.FullName())
}

func TestRegisterBeneficiaryVolunteerDenied(t *testing.T) {
	store := newFakeStore()
	volunteer := addUser(t, store, model.RoleVolunteer)

	_, err := RegisterBeneficiary(context.Background(), store, testLogger(), volunteer.ID, RegisterBeneficiaryParams{
		NationalID: "6543210-5",
		FirstName:  "Rosa",
		LastName:   "Fuentes",
		BirthDate:  time.Date(1942, time.March, 15, 0, 0, 0, 0, time.UTC),
		Address:    "Av. Los Aromos 118",
	})
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}

func TestRegisterBeneficiaryTooYoung(t *testing.T) {
	store := newFakeStore()
	requester := addUser(t, store, model.RoleRequester)

	_, err := RegisterBeneficiary(context.Background(), store, testLogger(), requester.ID, RegisterBeneficiaryParams{
		NationalID: "6543210-5",
		FirstName:  "Joven",
		LastName:   "Pérez",
		BirthDate:  time.Now().UTC().AddDate(-45, 0, 0),
		Address:    "Calle Uno 1",
	})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}
