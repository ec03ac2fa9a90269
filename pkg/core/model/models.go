package model

import (
	"fmt"
	"time"
)

// User roles
const (
	RoleRequester = "REQUESTER"
	RoleVolunteer = "VOLUNTEER"
)

// Request statuses
const (
	RequestPending   = "PENDING"
	RequestAssigned  = "ASSIGNED"
	RequestFinalized = "FINALIZED"
)

// Request priorities
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Application statuses
const (
	ApplicationPending  = "PENDING"
	ApplicationAccepted = "ACCEPTED"
	ApplicationRejected = "REJECTED"
)

// AutoRejectComment is attached to sibling applications that are closed out
// when another application on the same request is accepted.
const AutoRejectComment = "Application automatically rejected: another volunteer was selected"

// User represents a registered identity, either a requester (neighbourhood
// board representative filing help requests) or a volunteer.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
}

// IsRequester reports whether the user may create and manage requests.
func (u *User) IsRequester() bool {
	return u.Role == RoleRequester
}

// IsVolunteer reports whether the user may apply to requests.
func (u *User) IsVolunteer() bool {
	return u.Role == RoleVolunteer
}

// Beneficiary is the elderly person on whose behalf requests are filed.
// Holds protected personal data and must be at least 60 years old.
type Beneficiary struct {
	ID               string
	NationalID       string
	FirstName        string
	LastName         string
	BirthDate        time.Time
	Address          string
	Phone            string
	EmergencyContact string
	MedicalNotes     string
	Active           bool
	CreatedAt        time.Time
}

// FullName returns the beneficiary's display name.
func (b *Beneficiary) FullName() string {
	return fmt.Sprintf("%s %s", b.FirstName, b.LastName)
}

// AgeAt returns the beneficiary's age in full years at the given date.
func (b *Beneficiary) AgeAt(t time.Time) int {
	age := t.Year() - b.BirthDate.Year()
	if t.Month() < b.BirthDate.Month() ||
		(t.Month() == b.BirthDate.Month() && t.Day() < b.BirthDate.Day()) {
		age--
	}
	return age
}

// Request is the central entity: a unit of help needed by a beneficiary,
// owned by a requester, progressing PENDING -> ASSIGNED -> FINALIZED.
// AssignedVolunteerID is set exactly when the status is ASSIGNED or beyond.
type Request struct {
	ID                  string
	CreatorID           string
	BeneficiaryID       string
	Title               string
	Description         string
	HelpType            string
	Status              string
	Priority            string
	Deadline            *time.Time
	AssignedVolunteerID *string
	ClosingRemarks      string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	AssignedAt          *time.Time
	FinalizedAt         *time.Time
}

// IsPending reports whether the request is still open for applications.
func (r *Request) IsPending() bool { return r.Status == RequestPending }

// IsAssigned reports whether a volunteer has been matched to the request.
func (r *Request) IsAssigned() bool { return r.Status == RequestAssigned }

// IsFinalized reports whether the request has been closed.
func (r *Request) IsFinalized() bool { return r.Status == RequestFinalized }

// IsParticipant reports whether the given user is the creator or the
// assigned volunteer of the request.
func (r *Request) IsParticipant(userID string) bool {
	if userID == r.CreatorID {
		return true
	}
	return r.AssignedVolunteerID != nil && *r.AssignedVolunteerID == userID
}

// Application is a volunteer's bid to be matched to a request.
type Application struct {
	ID              string
	RequestID       string
	VolunteerID     string
	Motivation      string
	Status          string
	ResponseComment string
	SubmittedAt     time.Time
	RespondedAt     *time.Time
}

// IsPending reports whether the application is still awaiting a decision.
func (a *Application) IsPending() bool { return a.Status == ApplicationPending }

// Message is one entry in the append-only conversation attached to a
// request. Only the request's creator and assigned volunteer may send.
type Message struct {
	ID        string
	RequestID string
	SenderID  string
	Body      string
	Read      bool
	SentAt    time.Time
	ReadAt    *time.Time
}

// MatchResult is the outcome of accepting an application: the accepted
// application, the now-assigned request, and how many competing pending
// applications were auto-rejected.
type MatchResult struct {
	Request       Request
	Accepted      Application
	RejectedCount int64
}

// RequestFilter narrows a request listing. Zero values mean "no filter".
type RequestFilter struct {
	Status              string
	CreatorID           string
	AssignedVolunteerID string
	Priority            string
	Search              string
}
