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

// RequestStore defines the database operations needed by the request
// lifecycle operations
type RequestStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetBeneficiary(ctx context.Context, id string) (*model.Beneficiary, error)
	GetRequest(ctx context.Context, id string) (*model.Request, error)
	InsertRequest(ctx context.Context, r *model.Request) error
	UpdateRequest(ctx context.Context, r *model.Request) error
	DeleteRequest(ctx context.Context, id string) error
	ListRequests(ctx context.Context, filter model.RequestFilter) ([]model.Request, error)
}

// CreateRequestParams holds the writable fields of a new help request
type CreateRequestParams struct {
	BeneficiaryID string
	Title         string
	Description   string
	HelpType      string
	Priority      string
	Deadline      *time.Time
}

// CreateRequest files a new help request on behalf of a beneficiary. Only a
// requester may create; the request starts PENDING with no volunteer.
func CreateRequest(ctx context.Context, store RequestStore, logger *zap.Logger, actorID string, params CreateRequestParams) (*model.Request, error) {
	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpCreateRequest, nil); err != nil {
		return nil, err
	}

	if params.Priority == "" {
		params.Priority = model.PriorityMedium
	}
	now := time.Now().UTC()
	if err := model.ValidateRequestFields(params.Title, params.Description, params.HelpType, params.Priority, params.Deadline, now); err != nil {
		return nil, err
	}

	beneficiary, err := store.GetBeneficiary(ctx, params.BeneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load beneficiary: %w", err)
	}
	if !beneficiary.Active {
		return nil, &model.ValidationError{Field: "beneficiary_id", Reason: "beneficiary is not active"}
	}

	request := &model.Request{
		ID:            uuid.New().String(),
		CreatorID:     actor.ID,
		BeneficiaryID: beneficiary.ID,
		Title:         params.Title,
		Description:   params.Description,
		HelpType:      params.HelpType,
		Status:        model.RequestPending,
		Priority:      params.Priority,
		Deadline:      params.Deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := store.InsertRequest(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Request created",
		zap.String("request_id", request.ID),
		zap.String("creator_id", actor.ID),
		zap.String("priority", request.Priority))

	return request, nil
}

// UpdateRequestParams holds optional field changes; nil means unchanged
type UpdateRequestParams struct {
	Title       *string
	Description *string
	HelpType    *string
	Priority    *string
	Deadline    *time.Time
}

// UpdateRequest edits a request's fields. Permitted only to the creator and
// only while the request is still PENDING.
func UpdateRequest(ctx context.Context, store RequestStore, logger *zap.Logger, actorID, requestID string, params UpdateRequestParams) (*model.Request, error) {
	request, err := store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	// An assigned or finalized request can no longer be edited, no matter
	// who asks.
	if !request.IsPending() {
		return nil, fmt.Errorf("request is %s: %w", request.Status, model.ErrInvalidState)
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpUpdateRequest, request); err != nil {
		return nil, err
	}

	if params.Title != nil {
		request.Title = *params.Title
	}
	if params.Description != nil {
		request.Description = *params.Description
	}
	if params.HelpType != nil {
		request.HelpType = *params.HelpType
	}
	if params.Priority != nil {
		request.Priority = *params.Priority
	}
	if params.Deadline != nil {
		request.Deadline = params.Deadline
	}

	now := time.Now().UTC()
	if err := model.ValidateRequestFields(request.Title, request.Description, request.HelpType, request.Priority, request.Deadline, now); err != nil {
		return nil, err
	}
	request.UpdatedAt = now

	if err := store.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Request updated", zap.String("request_id", request.ID))

	return request, nil
}

// DeleteRequest removes a request together with its applications and
// messages. Same guard as UpdateRequest: creator only, PENDING only.
func DeleteRequest(ctx context.Context, store RequestStore, logger *zap.Logger, actorID, requestID string) error {
	request, err := store.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if !request.IsPending() {
		return fmt.Errorf("request is %s: %w", request.Status, model.ErrInvalidState)
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpDeleteRequest, request); err != nil {
		return err
	}

	if err := store.DeleteRequest(ctx, requestID); err != nil {
		return err
	}

	logger.Info("Request deleted", zap.String("request_id", requestID))

	return nil
}

// FinalizeRequest closes an assigned request, recording optional closing
// remarks. Either participant (creator or assigned volunteer) may finalize.
// A finalized request is never reopened.
func FinalizeRequest(ctx context.Context, store RequestStore, logger *zap.Logger, actorID, requestID, remarks string) (*model.Request, error) {
	request, err := store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsAssigned() {
		return nil, fmt.Errorf("request is %s: %w", request.Status, model.ErrInvalidState)
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpFinalizeRequest, request); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request.Status = model.RequestFinalized
	request.ClosingRemarks = remarks
	request.FinalizedAt = &now
	request.UpdatedAt = now

	if err := store.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Request finalized",
		zap.String("request_id", request.ID),
		zap.String("finalized_by", actor.ID))

	return request, nil
}

// ListOptions are the caller-supplied narrowing options for a listing
type ListOptions struct {
	Search   string
	Priority string
}

// ListRequests enumerates requests with role-dependent visibility: a
// requester sees their own requests in any status, a volunteer (or an
// anonymous caller, actorID == "") sees only PENDING requests. Listing
// never errors on visibility, it narrows.
func ListRequests(ctx context.Context, store RequestStore, logger *zap.Logger, actorID string, opts ListOptions) ([]model.Request, error) {
	filter := model.RequestFilter{
		Search:   opts.Search,
		Priority: opts.Priority,
	}

	if actorID == "" {
		filter.Status = model.RequestPending
	} else {
		actor, err := store.GetUser(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load actor: %w", err)
		}
		if actor.IsRequester() {
			filter.CreatorID = actor.ID
		} else {
			filter.Status = model.RequestPending
		}
	}

	requests, err := store.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}

	logger.Debug("Requests listed",
		zap.String("actor_id", actorID),
		zap.Int("count", len(requests)))

	return requests, nil
}

// RequestDetailStore extends RequestStore with the associations shown on
// the detail view
type RequestDetailStore interface {
	RequestStore
	ListApplicationsByRequest(ctx context.Context, requestID string) ([]model.Application, error)
	ListMessagesByRequest(ctx context.Context, requestID string) ([]model.Message, error)
}

// RequestDetail is a request with its associations resolved for display.
// Applications are only populated for the creator; messages only for
// participants.
type RequestDetail struct {
	Request           model.Request
	Beneficiary       model.Beneficiary
	Creator           model.User
	AssignedVolunteer *model.User
	Applications      []model.Application
	Messages          []model.Message
	// HasApplied is set when the actor is a volunteer with a live
	// application on this request.
	HasApplied bool
}

// GetRequestDetail resolves a request and the associations the actor is
// allowed to see. actorID may be empty for an anonymous view.
func GetRequestDetail(ctx context.Context, store RequestDetailStore, logger *zap.Logger, actorID, requestID string) (*RequestDetail, error) {
	request, err := store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	beneficiary, err := store.GetBeneficiary(ctx, request.BeneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load beneficiary: %w", err)
	}
	creator, err := store.GetUser(ctx, request.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}

	detail := &RequestDetail{
		Request:     *request,
		Beneficiary: *beneficiary,
		Creator:     *creator,
	}

	if request.AssignedVolunteerID != nil {
		volunteer, err := store.GetUser(ctx, *request.AssignedVolunteerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load assigned volunteer: %w", err)
		}
		detail.AssignedVolunteer = volunteer
	}

	var actor *model.User
	if actorID != "" {
		actor, err = store.GetUser(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load actor: %w", err)
		}
	}

	if actor != nil {
		applications, err := store.ListApplicationsByRequest(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if policy.Allowed(actor, policy.OpViewApplications, request) {
			detail.Applications = applications
		}
		if actor.IsVolunteer() {
			for _, a := range applications {
				if a.VolunteerID == actor.ID && a.IsPending() {
					detail.HasApplied = true
					break
				}
			}
		}
		if request.IsParticipant(actor.ID) {
			messages, err := store.ListMessagesByRequest(ctx, requestID)
			if err != nil {
				return nil, err
			}
			detail.Messages = messages
		}
	}

	return detail, nil
}
