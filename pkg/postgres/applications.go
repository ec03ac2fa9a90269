package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

const applicationColumns = `id, request_id, volunteer_id, motivation, status,
	response_comment, submitted_at, responded_at`

func scanApplication(row pgx.Row) (*model.Application, error) {
	var a model.Application
	err := row.Scan(&a.ID, &a.RequestID, &a.VolunteerID, &a.Motivation, &a.Status,
		&a.ResponseComment, &a.SubmittedAt, &a.RespondedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertApplication inserts a new application. The partial unique index on
// (request_id, volunteer_id) WHERE status = 'PENDING' is the atomic guard
// against concurrent duplicate submissions.
func (d *DB) InsertApplication(ctx context.Context, a *model.Application) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO applications (id, request_id, volunteer_id, motivation, status,
			response_comment, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.RequestID, a.VolunteerID, a.Motivation, a.Status, a.ResponseComment, a.SubmittedAt)
	if err != nil {
		if isUniqueViolation(err, "idx_applications_one_pending") {
			return model.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// GetApplication retrieves an application by id
func (d *DB) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	a, err := scanApplication(d.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	return a, nil
}

// ListApplicationsByRequest retrieves all applications for a request,
// newest first
func (d *DB) ListApplicationsByRequest(ctx context.Context, requestID string) ([]model.Application, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE request_id = $1 ORDER BY submitted_at DESC`,
		requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var applications []model.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return applications, nil
}

// CountApplicationsByVolunteer returns the number of applications a
// volunteer has ever submitted
func (d *DB) CountApplicationsByVolunteer(ctx context.Context, volunteerID string) (int64, error) {
	var n int64
	err := d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE volunteer_id = $1`, volunteerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}

// RejectApplication marks a single application as rejected with the given
// comment. Sibling applications and the parent request are untouched.
func (d *DB) RejectApplication(ctx context.Context, id, comment string, now time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE applications
		SET status = $2, response_comment = $3, responded_at = $4
		WHERE id = $1
	`, id, model.ApplicationRejected, comment, now)
	if err != nil {
		return fmt.Errorf("failed to reject application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// AcceptApplicationMatch performs the matching operation as one atomic unit:
// accept the application, bind its volunteer to the request, move the
// request to ASSIGNED and auto-reject every sibling application still
// pending. The request row is locked for the whole sequence; a second
// accept racing on the same request observes the committed state and
// returns model.ErrInvalidState.
func (d *DB) AcceptApplicationMatch(ctx context.Context, applicationID, comment string, now time.Time) (*model.MatchResult, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock both the application and its request, then re-check the
	// preconditions under the lock.
	app, err := scanApplication(tx.QueryRow(ctx, `
		SELECT a.id, a.request_id, a.volunteer_id, a.motivation, a.status,
			a.response_comment, a.submitted_at, a.responded_at
		FROM applications a
		JOIN requests r ON r.id = a.request_id
		WHERE a.id = $1
		FOR UPDATE OF a, r
	`, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", applicationID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock application: %w", err)
	}

	req, err := scanRequest(tx.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = $1`, app.RequestID))
	if err != nil {
		return nil, fmt.Errorf("failed to read locked request: %w", err)
	}

	if !req.IsPending() {
		return nil, fmt.Errorf("request is %s: %w", req.Status, model.ErrInvalidState)
	}
	if !app.IsPending() {
		return nil, fmt.Errorf("application is %s: %w", app.Status, model.ErrInvalidState)
	}

	_, err = tx.Exec(ctx, `
		UPDATE applications
		SET status = $2, response_comment = $3, responded_at = $4
		WHERE id = $1
	`, app.ID, model.ApplicationAccepted, comment, now)
	if err != nil {
		return nil, fmt.Errorf("failed to accept application: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE requests
		SET status = $2, assigned_volunteer_id = $3, assigned_at = $4, updated_at = $4
		WHERE id = $1
	`, req.ID, model.RequestAssigned, app.VolunteerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to assign request: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE applications
		SET status = $3, response_comment = $4, responded_at = $5
		WHERE request_id = $1 AND id <> $2 AND status = $6
	`, req.ID, app.ID, model.ApplicationRejected, model.AutoRejectComment, now, model.ApplicationPending)
	if err != nil {
		return nil, fmt.Errorf("failed to reject sibling applications: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}

	app.Status = model.ApplicationAccepted
	app.ResponseComment = comment
	app.RespondedAt = &now
	req.Status = model.RequestAssigned
	req.AssignedVolunteerID = &app.VolunteerID
	req.AssignedAt = &now
	req.UpdatedAt = now

	return &model.MatchResult{
		Request:       *req,
		Accepted:      *app,
		RejectedCount: tag.RowsAffected(),
	}, nil
}
