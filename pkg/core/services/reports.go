package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

// ReportStore defines the raw aggregation queries behind the management
// report
type ReportStore interface {
	AssignedRequestsReport(ctx context.Context) ([]model.AssignedRequestRow, error)
	ApplicationStatsReport(ctx context.Context, since time.Time) ([]model.ApplicationStatsRow, error)
	TopVolunteersReport(ctx context.Context, limit int) ([]model.VolunteerActivityRow, error)
}

// ManagementReport bundles the three coordination reports generated for
// the neighbourhood board.
type ManagementReport struct {
	GeneratedAt      time.Time
	WindowDays       int
	AssignedRequests []model.AssignedRequestRow
	ApplicationStats []model.ApplicationStatsRow
	TopVolunteers    []model.VolunteerActivityRow
}

// BuildManagementReport runs the three report queries: requests currently
// in progress, application statistics over the recent window, and the
// volunteer activity ranking.
func BuildManagementReport(ctx context.Context, store ReportStore, logger *zap.Logger, windowDays, topLimit int) (*ManagementReport, error) {
	now := time.Now().UTC()

	assigned, err := store.AssignedRequestsReport(ctx)
	if err != nil {
		return nil, err
	}

	since := now.AddDate(0, 0, -windowDays)
	stats, err := store.ApplicationStatsReport(ctx, since)
	if err != nil {
		return nil, err
	}

	volunteers, err := store.TopVolunteersReport(ctx, topLimit)
	if err != nil {
		return nil, err
	}

	logger.Info("Management report built",
		zap.Int("assigned_requests", len(assigned)),
		zap.Int("application_stats", len(stats)),
		zap.Int("top_volunteers", len(volunteers)))

	return &ManagementReport{
		GeneratedAt:      now,
		WindowDays:       windowDays,
		AssignedRequests: assigned,
		ApplicationStats: stats,
		TopVolunteers:    volunteers,
	}, nil
}

// DashboardStore defines the counters behind the dashboard
type DashboardStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	CountRequests(ctx context.Context, filter model.RequestFilter) (int64, error)
	CountApplicationsByVolunteer(ctx context.Context, volunteerID string) (int64, error)
}

// Dashboard computes the actor's landing-page counters. A requester sees
// their own requests broken down by status; a volunteer sees the open
// pool, their assignments and their application count.
func Dashboard(ctx context.Context, store DashboardStore, logger *zap.Logger, actorID string) (*model.DashboardStats, error) {
	actor, err := store.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}

	stats := &model.DashboardStats{Role: actor.Role}

	if actor.IsRequester() {
		own := model.RequestFilter{CreatorID: actor.ID}

		own.Status = model.RequestPending
		if stats.PendingRequests, err = store.CountRequests(ctx, own); err != nil {
			return nil, err
		}
		own.Status = model.RequestAssigned
		if stats.AssignedRequests, err = store.CountRequests(ctx, own); err != nil {
			return nil, err
		}
		own.Status = model.RequestFinalized
		if stats.FinalizedRequests, err = store.CountRequests(ctx, own); err != nil {
			return nil, err
		}
		return stats, nil
	}

	if stats.AvailableRequests, err = store.CountRequests(ctx, model.RequestFilter{Status: model.RequestPending}); err != nil {
		return nil, err
	}
	mine := model.RequestFilter{AssignedVolunteerID: actor.ID}
	mine.Status = model.RequestAssigned
	if stats.AssignedRequests, err = store.CountRequests(ctx, mine); err != nil {
		return nil, err
	}
	mine.Status = model.RequestFinalized
	if stats.FinalizedRequests, err = store.CountRequests(ctx, mine); err != nil {
		return nil, err
	}
	if stats.MyApplications, err = store.CountApplicationsByVolunteer(ctx, actor.ID); err != nil {
		return nil, err
	}

	return stats, nil
}
