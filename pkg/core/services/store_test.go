package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

// fakeStore is an in-memory stand-in for the postgres layer, implementing
// every store interface the operations declare. It mirrors the database
// guarantees the operations rely on: not-found errors wrap ErrNotFound,
// duplicate pending applications are refused, and the matching operation
// re-checks state before committing.
type fakeStore struct {
	users         map[string]*model.User
	beneficiaries map[string]*model.Beneficiary
	requests      map[string]*model.Request
	applications  map[string]*model.Application
	messages      map[string]*model.Message
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[string]*model.User),
		beneficiaries: make(map[string]*model.Beneficiary),
		requests:      make(map[string]*model.Request),
		applications:  make(map[string]*model.Application),
		messages:      make(map[string]*model.Message),
	}
}

func (s *fakeStore) GetUser(_ context.Context, id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, model.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *fakeStore) InsertUser(_ context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return &model.ValidationError{Field: "email", Reason: "already registered"}
		}
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *fakeStore) CountUsers(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeStore) GetBeneficiary(_ context.Context, id string) (*model.Beneficiary, error) {
	b, ok := s.beneficiaries[id]
	if !ok {
		return nil, fmt.Errorf("beneficiary %s: %w", id, model.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (s *fakeStore) InsertBeneficiary(_ context.Context, b *model.Beneficiary) error {
	for _, existing := range s.beneficiaries {
		if existing.NationalID == b.NationalID {
			return &model.ValidationError{Field: "national_id", Reason: "already registered"}
		}
	}
	copied := *b
	s.beneficiaries[b.ID] = &copied
	return nil
}

func (s *fakeStore) GetRequest(_ context.Context, id string) (*model.Request, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", id, model.ErrNotFound)
	}
	copied := *r
	return &copied, nil
}

func (s *fakeStore) InsertRequest(_ context.Context, r *model.Request) error {
	copied := *r
	s.requests[r.ID] = &copied
	return nil
}

func (s *fakeStore) UpdateRequest(_ context.Context, r *model.Request) error {
	if _, ok := s.requests[r.ID]; !ok {
		return fmt.Errorf("request %s: %w", r.ID, model.ErrNotFound)
	}
	copied := *r
	s.requests[r.ID] = &copied
	return nil
}

func (s *fakeStore) DeleteRequest(_ context.Context, id string) error {
	if _, ok := s.requests[id]; !ok {
		return fmt.Errorf("request %s: %w", id, model.ErrNotFound)
	}
	delete(s.requests, id)
	for aid, a := range s.applications {
		if a.RequestID == id {
			delete(s.applications, aid)
		}
	}
	for mid, m := range s.messages {
		if m.RequestID == id {
			delete(s.messages, mid)
		}
	}
	return nil
}

func matchesFilter(r *model.Request, filter model.RequestFilter) bool {
	if filter.Status != "" && r.Status != filter.Status {
		return false
	}
	if filter.CreatorID != "" && r.CreatorID != filter.CreatorID {
		return false
	}
	if filter.AssignedVolunteerID != "" &&
		(r.AssignedVolunteerID == nil || *r.AssignedVolunteerID != filter.AssignedVolunteerID) {
		return false
	}
	if filter.Priority != "" && r.Priority != filter.Priority {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			return false
		}
	}
	return true
}

func (s *fakeStore) ListRequests(_ context.Context, filter model.RequestFilter) ([]model.Request, error) {
	var requests []model.Request
	for _, r := range s.requests {
		if matchesFilter(r, filter) {
			requests = append(requests, *r)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID < requests[j].ID
	})
	return requests, nil
}

func (s *fakeStore) CountRequests(_ context.Context, filter model.RequestFilter) (int64, error) {
	var n int64
	for _, r := range s.requests {
		if matchesFilter(r, filter) {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) GetApplication(_ context.Context, id string) (*model.Application, error) {
	a, ok := s.applications[id]
	if !ok {
		return nil, fmt.Errorf("application %s: %w", id, model.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (s *fakeStore) InsertApplication(_ context.Context, a *model.Application) error {
	for _, existing := range s.applications {
		if existing.RequestID == a.RequestID && existing.VolunteerID == a.VolunteerID && existing.IsPending() {
			return model.ErrDuplicateApplication
		}
	}
	copied := *a
	s.applications[a.ID] = &copied
	return nil
}

func (s *fakeStore) ListApplicationsByRequest(_ context.Context, requestID string) ([]model.Application, error) {
	var applications []model.Application
	for _, a := range s.applications {
		if a.RequestID == requestID {
			applications = append(applications, *a)
		}
	}
	sort.Slice(applications, func(i, j int) bool {
		if !applications[i].SubmittedAt.Equal(applications[j].SubmittedAt) {
			return applications[i].SubmittedAt.After(applications[j].SubmittedAt)
		}
		return applications[i].ID < applications[j].ID
	})
	return applications, nil
}

func (s *fakeStore) CountApplicationsByVolunteer(_ context.Context, volunteerID string) (int64, error) {
	var n int64
	for _, a := range s.applications {
		if a.VolunteerID == volunteerID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) RejectApplication(_ context.Context, id, comment string, now time.Time) error {
	a, ok := s.applications[id]
	if !ok {
		return fmt.Errorf("application %s: %w", id, model.ErrNotFound)
	}
	a.Status = model.ApplicationRejected
	a.ResponseComment = comment
	a.RespondedAt = &now
	return nil
}

func (s *fakeStore) AcceptApplicationMatch(_ context.Context, applicationID, comment string, now time.Time) (*model.MatchResult, error) {
	app, ok := s.applications[applicationID]
	if !ok {
		return nil, fmt.Errorf("application %s: %w", applicationID, model.ErrNotFound)
	}
	req, ok := s.requests[app.RequestID]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", app.RequestID, model.ErrNotFound)
	}

	if !req.IsPending() {
		return nil, fmt.Errorf("request is %s: %w", req.Status, model.ErrInvalidState)
	}
	if !app.IsPending() {
		return nil, fmt.Errorf("application is %s: %w", app.Status, model.ErrInvalidState)
	}

	app.Status = model.ApplicationAccepted
	app.ResponseComment = comment
	app.RespondedAt = &now

	req.Status = model.RequestAssigned
	req.AssignedVolunteerID = &app.VolunteerID
	req.AssignedAt = &now
	req.UpdatedAt = now

	var rejected int64
	for _, sibling := range s.applications {
		if sibling.RequestID == req.ID && sibling.ID != app.ID && sibling.IsPending() {
			sibling.Status = model.ApplicationRejected
			sibling.ResponseComment = model.AutoRejectComment
			sibling.RespondedAt = &now
			rejected++
		}
	}

	return &model.MatchResult{
		Request:       *req,
		Accepted:      *app,
		RejectedCount: rejected,
	}, nil
}

func (s *fakeStore) GetMessage(_ context.Context, id string) (*model.Message, error) {
	m, ok := s.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", id, model.ErrNotFound)
	}
	copied := *m
	return &copied, nil
}

func (s *fakeStore) InsertMessage(_ context.Context, m *model.Message) error {
	copied := *m
	s.messages[m.ID] = &copied
	return nil
}

func (s *fakeStore) ListMessagesByRequest(_ context.Context, requestID string) ([]model.Message, error) {
	var messages []model.Message
	for _, m := range s.messages {
		if m.RequestID == requestID {
			messages = append(messages, *m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].SentAt.Equal(messages[j].SentAt) {
			return messages[i].SentAt.Before(messages[j].SentAt)
		}
		return messages[i].ID < messages[j].ID
	})
	return messages, nil
}

func (s *fakeStore) MarkMessageRead(_ context.Context, id string, at time.Time) error {
	m, ok := s.messages[id]
	if !ok {
		return fmt.Errorf("message %s: %w", id, model.ErrNotFound)
	}
	if m.Read {
		return nil
	}
	m.Read = true
	m.ReadAt = &at
	return nil
}

// Test fixture helpers.

func addUser(t *testing.T, store *fakeStore, role string) *model.User {
	t.Helper()
	u := &model.User{
		ID:        uuid.New().String(),
		Name:      "Test " + role,
		Email:     uuid.New().String() + "@example.cl",
		Role:      role,
		Phone:     "+56912345678",
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.InsertUser(context.Background(), u))
	return u
}

func addBeneficiary(t *testing.T, store *fakeStore) *model.Beneficiary {
	t.Helper()
	b := &model.Beneficiary{
		ID:         uuid.New().String(),
		NationalID: fmt.Sprintf("%d-5", 6000000+len(store.beneficiaries)),
		FirstName:  "Rosa",
		LastName:   "Fuentes",
		BirthDate:  time.Date(1945, time.June, 1, 0, 0, 0, 0, time.UTC),
		Address:    "Av. Siempre Viva 100",
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, store.InsertBeneficiary(context.Background(), b))
	return b
}

func addRequest(t *testing.T, store *fakeStore, creator *model.User, beneficiary *model.Beneficiary) *model.Request {
	t.Helper()
	now := time.Now().UTC()
	r := &model.Request{
		ID:            uuid.New().String(),
		CreatorID:     creator.ID,
		BeneficiaryID: beneficiary.ID,
		Title:         "Compra semanal de alimentos",
		Description:   "Ayuda para hacer la compra semanal en la feria del barrio.",
		HelpType:      "Compras",
		Status:        model.RequestPending,
		Priority:      model.PriorityMedium,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.InsertRequest(context.Background(), r))
	return r
}

func addApplication(t *testing.T, store *fakeStore, request *model.Request, volunteer *model.User) *model.Application {
	t.Helper()
	a := &model.Application{
		ID:          uuid.New().String(),
		RequestID:   request.ID,
		VolunteerID: volunteer.ID,
		Motivation:  "Vivo cerca y tengo tiempo libre para ayudar todas las semanas.",
		Status:      model.ApplicationPending,
		SubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, store.InsertApplication(context.Background(), a))
	return a
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
