package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

// AssignedRequestsReport returns every request currently in progress with
// its creator, assigned volunteer and beneficiary resolved. Ordered by
// assignment recency, then priority, then creation date.
func (d *DB) AssignedRequestsReport(ctx context.Context) ([]model.AssignedRequestRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT
			r.id, r.title, r.help_type, r.priority, r.created_at, r.assigned_at,
			uc.name, uc.email,
			uv.name, uv.email,
			b.first_name || ' ' || b.last_name, b.national_id, b.address
		FROM requests r
		INNER JOIN users uc ON r.creator_id = uc.id
		INNER JOIN users uv ON r.assigned_volunteer_id = uv.id
		INNER JOIN beneficiaries b ON r.beneficiary_id = b.id
		WHERE r.status = 'ASSIGNED'
			AND r.assigned_volunteer_id IS NOT NULL
		ORDER BY
			r.assigned_at DESC,
			CASE r.priority
				WHEN 'URGENT' THEN 1
				WHEN 'HIGH' THEN 2
				WHEN 'MEDIUM' THEN 3
				WHEN 'LOW' THEN 4
			END,
			r.created_at DESC
		LIMIT 100
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned requests report: %w", err)
	}
	defer rows.Close()

	var report []model.AssignedRequestRow
	for rows.Next() {
		var row model.AssignedRequestRow
		if err := rows.Scan(&row.RequestID, &row.Title, &row.HelpType, &row.Priority,
			&row.CreatedAt, &row.AssignedAt,
			&row.CreatorName, &row.CreatorEmail,
			&row.VolunteerName, &row.VolunteerEmail,
			&row.BeneficiaryName, &row.BeneficiaryRUT, &row.Address); err != nil {
			return nil, fmt.Errorf("failed to scan assigned request row: %w", err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assigned requests report: %w", err)
	}

	return report, nil
}

// ApplicationStatsReport aggregates application counts per request created
// since the given date, keeping only requests with at least one application
// and ordering the most contested first.
func (d *DB) ApplicationStatsReport(ctx context.Context, since time.Time) ([]model.ApplicationStatsRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT
			r.id, r.title, r.status, r.created_at,
			COUNT(a.id) AS applications,
			SUM(CASE WHEN a.status = 'PENDING' THEN 1 ELSE 0 END) AS pending,
			SUM(CASE WHEN a.status = 'ACCEPTED' THEN 1 ELSE 0 END) AS accepted,
			SUM(CASE WHEN a.status = 'REJECTED' THEN 1 ELSE 0 END) AS rejected
		FROM requests r
		LEFT JOIN applications a ON r.id = a.request_id
		WHERE r.created_at >= $1
		GROUP BY r.id, r.title, r.status, r.created_at
		HAVING COUNT(a.id) > 0
		ORDER BY applications DESC, r.created_at DESC
		LIMIT 50
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query application stats report: %w", err)
	}
	defer rows.Close()

	var report []model.ApplicationStatsRow
	for rows.Next() {
		var row model.ApplicationStatsRow
		if err := rows.Scan(&row.RequestID, &row.Title, &row.Status, &row.CreatedAt,
			&row.Applications, &row.Pending, &row.Accepted, &row.Rejected); err != nil {
			return nil, fmt.Errorf("failed to scan application stats row: %w", err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application stats report: %w", err)
	}

	return report, nil
}

// TopVolunteersReport ranks active volunteers who have applied at least
// once, by completed requests, then assignments, then applications.
func (d *DB) TopVolunteersReport(ctx context.Context, limit int) ([]model.VolunteerActivityRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.pool.Query(ctx, `
		SELECT
			u.id, u.name, u.email,
			COUNT(DISTINCT a.id) AS applications,
			COUNT(DISTINCT r.id) AS assigned,
			COUNT(DISTINCT CASE WHEN r.status = 'FINALIZED' THEN r.id END) AS completed,
			MIN(a.submitted_at) AS first_application,
			MAX(a.submitted_at) AS last_application
		FROM users u
		LEFT JOIN applications a ON u.id = a.volunteer_id
		LEFT JOIN requests r ON u.id = r.assigned_volunteer_id
		WHERE u.role = 'VOLUNTEER'
			AND u.active
			AND a.id IS NOT NULL
		GROUP BY u.id, u.name, u.email
		ORDER BY completed DESC, assigned DESC, applications DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top volunteers report: %w", err)
	}
	defer rows.Close()

	var report []model.VolunteerActivityRow
	for rows.Next() {
		var row model.VolunteerActivityRow
		if err := rows.Scan(&row.VolunteerID, &row.Name, &row.Email,
			&row.Applications, &row.Assigned, &row.Completed,
			&row.FirstApplication, &row.LastApplication); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer activity row: %w", err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top volunteers report: %w", err)
	}

	return report, nil
}
