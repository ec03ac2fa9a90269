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

// Default decision comments, recorded when the requester leaves none.
const (
	defaultAcceptComment = "Application accepted"
	defaultRejectComment = "Application rejected"
)

// ApplicationStore defines the database operations needed by the
// application and matching operations
type ApplicationStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetRequest(ctx context.Context, id string) (*model.Request, error)
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	InsertApplication(ctx context.Context, a *model.Application) error
	ListApplicationsByRequest(ctx context.Context, requestID string) ([]model.Application, error)
	RejectApplication(ctx context.Context, id, comment string, now time.Time) error
	AcceptApplicationMatch(ctx context.Context, applicationID, comment string, now time.Time) (*model.MatchResult, error)
}

// SubmitApplication files a volunteer's bid on a pending request. The
// motivation must meet the configured minimum length, and a volunteer may
// hold at most one pending application per request; the store enforces
// that atomically and reports ErrDuplicateApplication.
func SubmitApplication(ctx context.Context, store ApplicationStore, logger *zap.Logger, actorID, requestID, motivation string, minMotivation int) (*model.Application, error) {
	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpSubmitApplication, nil); err != nil {
		return nil, err
	}

	request, err := store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsPending() {
		return nil, fmt.Errorf("request is %s: %w", request.Status, model.ErrInvalidState)
	}

	if err := model.ValidateMotivation(motivation, minMotivation); err != nil {
		return nil, err
	}

	application := &model.Application{
		ID:          uuid.New().String(),
		RequestID:   request.ID,
		VolunteerID: actor.ID,
		Motivation:  motivation,
		Status:      model.ApplicationPending,
		SubmittedAt: time.Now().UTC(),
	}

	if err := store.InsertApplication(ctx, application); err != nil {
		return nil, err
	}

	logger.Info("Application submitted",
		zap.String("application_id", application.ID),
		zap.String("request_id", request.ID),
		zap.String("volunteer_id", actor.ID))

	return application, nil
}

// AcceptApplication matches a volunteer to a request. In one transaction
// the application becomes ACCEPTED, the request becomes ASSIGNED to the
// applicant, and every other pending application on the request is
// auto-rejected. Only the request's creator may decide, and only while the
// request is still PENDING.
func AcceptApplication(ctx context.Context, store ApplicationStore, logger *zap.Logger, actorID, applicationID, comment string) (*model.MatchResult, error) {
	application, err := store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	request, err := store.GetRequest(ctx, application.RequestID)
	if err != nil {
		return nil, err
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpDecideApplication, request); err != nil {
		return nil, err
	}

	if !request.IsPending() {
		return nil, fmt.Errorf("request is %s: %w", request.Status, model.ErrInvalidState)
	}
	if !application.IsPending() {
		return nil, fmt.Errorf("application is %s: %w", application.Status, model.ErrInvalidState)
	}

	if comment == "" {
		comment = defaultAcceptComment
	}

	// The store re-checks both states under row locks, so a concurrent
	// accept on the same request loses with ErrInvalidState rather than
	// producing a second assignment.
	result, err := store.AcceptApplicationMatch(ctx, applicationID, comment, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	logger.Info("Application accepted",
		zap.String("application_id", applicationID),
		zap.String("request_id", request.ID),
		zap.String("volunteer_id", result.Accepted.VolunteerID),
		zap.Int64("auto_rejected", result.RejectedCount))

	return result, nil
}

// RejectApplication declines a single pending application without touching
// the request or its other applications.
func RejectApplication(ctx context.Context, store ApplicationStore, logger *zap.Logger, actorID, applicationID, comment string) (*model.Application, error) {
	application, err := store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	request, err := store.GetRequest(ctx, application.RequestID)
	if err != nil {
		return nil, err
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpDecideApplication, request); err != nil {
		return nil, err
	}

	if !application.IsPending() {
		return nil, fmt.Errorf("application is %s: %w", application.Status, model.ErrInvalidState)
	}

	if comment == "" {
		comment = defaultRejectComment
	}

	now := time.Now().UTC()
	if err := store.RejectApplication(ctx, applicationID, comment, now); err != nil {
		return nil, err
	}

	application.Status = model.ApplicationRejected
	application.ResponseComment = comment
	application.RespondedAt = &now

	logger.Info("Application rejected",
		zap.String("application_id", applicationID),
		zap.String("request_id", request.ID))

	return application, nil
}

// ListApplications returns the applications on a request, visible only to
// the request's creator.
func ListApplications(ctx context.Context, store ApplicationStore, logger *zap.Logger, actorID, requestID string) ([]model.Application, error) {
	request, err := store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpViewApplications, request); err != nil {
		return nil, err
	}

	return store.ListApplicationsByRequest(ctx, requestID)
}
