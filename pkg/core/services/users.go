package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
	"github.com/saraya/voluntariado-mayor/pkg/core/policy"
)

// UserStore defines the database operations needed by registration
type UserStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	InsertUser(ctx context.Context, u *model.User) error
	InsertBeneficiary(ctx context.Context, b *model.Beneficiary) error
}

// RegisterUserParams holds the fields of a new account
type RegisterUserParams struct {
	Name    string
	Email   string
	Role    string
	Phone   string
	Address string
}

// RegisterUser creates an account with exactly one role, active from the
// start. Email uniqueness is enforced by the store.
func RegisterUser(ctx context.Context, store UserStore, logger *zap.Logger, params RegisterUserParams) (*model.User, error) {
	user := &model.User{
		ID:        uuid.New().String(),
		Name:      params.Name,
		Email:     params.Email,
		Role:      params.Role,
		Phone:     params.Phone,
		Address:   params.Address,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	if err := model.ValidateUser(user); err != nil {
		return nil, err
	}

	if err := store.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role))

	return user, nil
}

// RegisterBeneficiaryParams holds the fields of a new beneficiary record
type RegisterBeneficiaryParams struct {
	NationalID       string
	FirstName        string
	LastName         string
	BirthDate        time.Time
	Address          string
	Phone            string
	EmergencyContact string
	MedicalNotes     string
}

// RegisterBeneficiary records an elderly person on whose behalf requests
// can be filed. Requester-only; the beneficiary must be between 60 and 120
// years old and carry a well-formed national ID, unique across the system.
func RegisterBeneficiary(ctx context.Context, store UserStore, logger *zap.Logger, actorID string, params RegisterBeneficiaryParams) (*model.Beneficiary, error) {
	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpRegisterBeneficiary, nil); err != nil {
		return nil, err
	}

	beneficiary := &model.Beneficiary{
		ID:               uuid.New().String(),
		NationalID:       params.NationalID,
		FirstName:        params.FirstName,
		LastName:         params.LastName,
		BirthDate:        params.BirthDate,
		Address:          params.Address,
		Phone:            params.Phone,
		EmergencyContact: params.EmergencyContact,
		MedicalNotes:     params.MedicalNotes,
		Active:           true,
		CreatedAt:        time.Now().UTC(),
	}

	if err := model.ValidateBeneficiary(beneficiary, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := store.InsertBeneficiary(ctx, beneficiary); err != nil {
		return nil, err
	}

	logger.Info("Beneficiary registered",
		zap.String("beneficiary_id", beneficiary.ID),
		zap.String("registered_by", actor.ID))

	return beneficiary, nil
}
