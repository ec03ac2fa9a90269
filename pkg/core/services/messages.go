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

// MessageStore defines the database operations needed by the per-request
// conversation
type MessageStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetRequest(ctx context.Context, id string) (*model.Request, error)
	GetMessage(ctx context.Context, id string) (*model.Message, error)
	InsertMessage(ctx context.Context, m *model.Message) error
	ListMessagesByRequest(ctx context.Context, requestID string) ([]model.Message, error)
	MarkMessageRead(ctx context.Context, id string, now time.Time) error
}

// SendMessage appends a message to a request's conversation. Only the
// request's creator and its assigned volunteer may write; the request's
// status is irrelevant, so a finalized request keeps its thread usable.
func SendMessage(ctx context.Context, store MessageStore, logger *zap.Logger, actorID, requestID, body string) (*model.Message, error) {
	request, err := store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if err := policy.Authorize(actor, policy.OpSendMessage, request); err != nil {
		return nil, err
	}

	if err := model.ValidateMessageBody(body); err != nil {
		return nil, err
	}

	message := &model.Message{
		ID:        uuid.New().String(),
		RequestID: request.ID,
		SenderID:  actor.ID,
		Body:      body,
		SentAt:    time.Now().UTC(),
	}

	if err := store.InsertMessage(ctx, message); err != nil {
		return nil, err
	}

	logger.Info("Message sent",
		zap.String("message_id", message.ID),
		zap.String("request_id", request.ID),
		zap.String("sender_id", actor.ID))

	return message, nil
}

// ListMessages returns a request's conversation in chronological order,
// visible only to the request's participants.
func ListMessages(ctx context.Context, store MessageStore, logger *zap.Logger, actorID, requestID string) ([]model.Message, error) {
	request, err := store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if !request.IsParticipant(actor.ID) {
		return nil, model.ErrPermissionDenied
	}

	return store.ListMessagesByRequest(ctx, requestID)
}

// MarkMessageRead flags a message as read. Only the participant who did
// not send the message can mark it; marking twice is a no-op.
func MarkMessageRead(ctx context.Context, store MessageStore, logger *zap.Logger, actorID, messageID string) error {
	message, err := store.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	request, err := store.GetRequest(ctx, message.RequestID)
	if err != nil {
		return err
	}

	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load actor: %w", err)
	}
	if !request.IsParticipant(actor.ID) || actor.ID == message.SenderID {
		return model.ErrPermissionDenied
	}

	if message.Read {
		return nil
	}

	if err := store.MarkMessageRead(ctx, messageID, time.Now().UTC()); err != nil {
		return err
	}

	logger.Debug("Message marked read",
		zap.String("message_id", messageID),
		zap.String("reader_id", actor.ID))

	return nil
}
