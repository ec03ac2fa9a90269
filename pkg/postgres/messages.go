package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

// InsertMessage appends a message to a request's conversation
func (d *DB) InsertMessage(ctx context.Context, m *model.Message) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO messages (id, request_id, sender_id, body, read, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.RequestID, m.SenderID, m.Body, m.Read, m.SentAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// GetMessage retrieves a message by id
func (d *DB) GetMessage(ctx context.Context, id string) (*model.Message, error) {
	var m model.Message
	err := d.pool.QueryRow(ctx, `
		SELECT id, request_id, sender_id, body, read, sent_at, read_at
		FROM messages
		WHERE id = $1
	`, id).Scan(&m.ID, &m.RequestID, &m.SenderID, &m.Body, &m.Read, &m.SentAt, &m.ReadAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("message %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query message: %w", err)
	}
	return &m, nil
}

// ListMessagesByRequest retrieves a request's conversation in send order
func (d *DB) ListMessagesByRequest(ctx context.Context, requestID string) ([]model.Message, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, request_id, sender_id, body, read, sent_at, read_at
		FROM messages
		WHERE request_id = $1
		ORDER BY sent_at
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.RequestID, &m.SenderID, &m.Body, &m.Read, &m.SentAt, &m.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// MarkMessageRead records that the recipient has seen the message. A message
// already marked read keeps its original read timestamp.
func (d *DB) MarkMessageRead(ctx context.Context, id string, at time.Time) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE messages
		SET read = TRUE, read_at = $2
		WHERE id = $1 AND NOT read
	`, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}
