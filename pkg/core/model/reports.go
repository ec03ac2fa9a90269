package model

import "time"

// AssignedRequestRow is one line of the assigned-requests management
// report: a request currently in progress with its creator, assigned
// volunteer and beneficiary resolved.
type AssignedRequestRow struct {
	RequestID       string
	Title           string
	HelpType        string
	Priority        string
	CreatedAt       time.Time
	AssignedAt      time.Time
	CreatorName     string
	CreatorEmail    string
	VolunteerName   string
	VolunteerEmail  string
	BeneficiaryName string
	BeneficiaryRUT  string
	Address         string
}

// ApplicationStatsRow aggregates application counts for one request.
type ApplicationStatsRow struct {
	RequestID    string
	Title        string
	Status       string
	CreatedAt    time.Time
	Applications int64
	Pending      int64
	Accepted     int64
	Rejected     int64
}

// VolunteerActivityRow ranks a volunteer by matched and completed requests.
type VolunteerActivityRow struct {
	VolunteerID      string
	Name             string
	Email            string
	Applications     int64
	Assigned         int64
	Completed        int64
	FirstApplication time.Time
	LastApplication  time.Time
}

// DashboardStats holds the role-dependent counters shown on the dashboard.
// For a requester the request counters cover their own requests; for a
// volunteer they cover requests assigned to them plus the open pool.
type DashboardStats struct {
	Role              string
	PendingRequests   int64
	AssignedRequests  int64
	FinalizedRequests int64
	// Volunteer only
	AvailableRequests int64
	MyApplications    int64
}
