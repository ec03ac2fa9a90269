package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

const requestColumns = `id, creator_id, beneficiary_id, title, description, help_type,
	status, priority, deadline, assigned_volunteer_id, closing_remarks,
	created_at, updated_at, assigned_at, finalized_at`

func scanRequest(row pgx.Row) (*model.Request, error) {
	var r model.Request
	err := row.Scan(&r.ID, &r.CreatorID, &r.BeneficiaryID, &r.Title, &r.Description, &r.HelpType,
		&r.Status, &r.Priority, &r.Deadline, &r.AssignedVolunteerID, &r.ClosingRemarks,
		&r.CreatedAt, &r.UpdatedAt, &r.AssignedAt, &r.FinalizedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertRequest inserts a new help request
func (d *DB) InsertRequest(ctx context.Context, r *model.Request) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO requests (id, creator_id, beneficiary_id, title, description, help_type,
			status, priority, deadline, closing_remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.ID, r.CreatorID, r.BeneficiaryID, r.Title, r.Description, r.HelpType,
		r.Status, r.Priority, r.Deadline, r.ClosingRemarks, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

// GetRequest retrieves a request by id
func (d *DB) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	r, err := scanRequest(d.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("request %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query request: %w", err)
	}
	return r, nil
}

// UpdateRequest persists the writable fields of a request
func (d *DB) UpdateRequest(ctx context.Context, r *model.Request) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE requests
		SET title = $2, description = $3, help_type = $4, priority = $5, deadline = $6,
			status = $7, closing_remarks = $8, updated_at = $9, finalized_at = $10
		WHERE id = $1
	`, r.ID, r.Title, r.Description, r.HelpType, r.Priority, r.Deadline,
		r.Status, r.ClosingRemarks, r.UpdatedAt, r.FinalizedAt)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", r.ID, model.ErrNotFound)
	}
	return nil
}

// DeleteRequest removes a request. Applications and messages are removed by
// the ON DELETE CASCADE constraints.
func (d *DB) DeleteRequest(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// ListRequests retrieves requests matching the filter, newest first
func (d *DB) ListRequests(ctx context.Context, filter model.RequestFilter) ([]model.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests`
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.CreatorID != "" {
		conds = append(conds, "creator_id = "+arg(filter.CreatorID))
	}
	if filter.AssignedVolunteerID != "" {
		conds = append(conds, "assigned_volunteer_id = "+arg(filter.AssignedVolunteerID))
	}
	if filter.Priority != "" {
		conds = append(conds, "priority = "+arg(filter.Priority))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s OR help_type ILIKE %s)", p, p, p))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []model.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	return requests, nil
}

// CountRequests returns the number of requests matching the filter
func (d *DB) CountRequests(ctx context.Context, filter model.RequestFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM requests`
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.CreatorID != "" {
		conds = append(conds, "creator_id = "+arg(filter.CreatorID))
	}
	if filter.AssignedVolunteerID != "" {
		conds = append(conds, "assigned_volunteer_id = "+arg(filter.AssignedVolunteerID))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var n int64
	if err := d.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return n, nil
}
