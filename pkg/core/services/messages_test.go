package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

// assignedRequest sets up a request matched to a volunteer.
func assignedRequest(t *testing.T, store *fakeStore) (*model.User, *model.User, *model.Request) {
	t.Helper()
	requester := addUser(t, store, model.RoleRequester)
	volunteer := addUser(t, store, model.RoleVolunteer)
	beneficiary := addBeneficiary(t, store)
	request := addRequest(t, store, requester, beneficiary)
	application := addApplication(t, store, request, volunteer)

	_, err := store.AcceptApplicationMatch(context.Background(), application.ID, "ok", time.Now().UTC())
	require.NoError(t, err)

	return requester, volunteer, request
}

func TestSendMessage(t *testing.T) {
	store := newFakeStore()
	requester, volunteer, request := assignedRequest(t, store)

	sent, err := SendMessage(context.Background(), store, testLogger(), volunteer.ID, request.ID, "Hola, ¿le parece el sábado a las 10?")
	require.NoError(t, err)
	assert.Equal(t, volunteer.ID, sent.SenderID)
	assert.False(t, sent.Read)

	reply, err := SendMessage(context.Background(), store, testLogger(), requester.ID, request.ID, "Perfecto, ahí estaremos.")
	require.NoError(t, err)
	assert.Equal(t, requester.ID, reply.SenderID)

	messages, err := ListMessages(context.Background(), store, testLogger(), requester.ID, request.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestSendMessageOutsiderDenied(t *testing.T) {
	store := newFakeStore()
	_, _, request := assignedRequest(t, store)
	outsider := addUser(t, store, model.RoleVolunteer)

	_, err := SendMessage(context.Background(), store, testLogger(), outsider.ID, request.ID, "¿Puedo sumarme?")
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}

func TestSendMessageBeforeAssignment(t *testing.T) {
	store := newFakeStore()
	requester := addUser(t, store, model.RoleRequester)
	volunteer := addUser(t, store, model.RoleVolunteer)
	beneficiary := addBeneficiary(t, store)
	request := addRequest(t, store, requester, beneficiary)
	addApplication(t, store, request, volunteer)

	// An applicant is not yet a participant.
	_, err := SendMessage(context.Background(), store, testLogger(), volunteer.ID, request.ID, "Hola, postulé a su solicitud")
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	// The creator can already use the thread.
	_, err = SendMessage(context.Background(), store, testLogger(), requester.ID, request.ID, "Nota para el futuro voluntario")
	require.NoError(t, err)
}

func TestSendMessageAfterFinalization(t *testing.T) {
	store := newFakeStore()
	requester, volunteer, request := assignedRequest(t, store)

	_, err := FinalizeRequest(context.Background(), store, testLogger(), requester.ID, request.ID, "listo")
	require.NoError(t, err)

	// The conversation stays open after the request is closed.
	_, err = SendMessage(context.Background(), store, testLogger(), volunteer.ID, request.ID, "¡Gracias por todo!")
	require.NoError(t, err)
}

func TestSendMessageEmptyBody(t *testing.T) {
	store := newFakeStore()
	requester, _, request := assignedRequest(t, store)

	_, err := SendMessage(context.Background(), store, testLogger(), requester.ID, request.ID, "   ")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestListMessagesParticipantsOnly(t *testing.T) {
	store := newFakeStore()
	requester, volunteer, request := assignedRequest(t, store)
	outsider := addUser(t, store, model.RoleVolunteer)

	_, err := SendMessage(context.Background(), store, testLogger(), requester.ID, request.ID, "Hola")
	require.NoError(t, err)

	_, err = ListMessages(context.Background(), store, testLogger(), volunteer.ID, request.ID)
	require.NoError(t, err)

	_, err = ListMessages(context.Background(), store, testLogger(), outsider.ID, request.ID)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}

func TestMarkMessageRead(t *testing.T) {
	store := newFakeStore()
	requester, volunteer, request := assignedRequest(t, store)

	sent, err := SendMessage(context.Background(), store, testLogger(), requester.ID, request.ID, "¿Cómo fue la visita?")
	require.NoError(t, err)

	require.NoError(t, MarkMessageRead(context.Background(), store, testLogger(), volunteer.ID, sent.ID))

	stored, err := store.GetMessage(context.Background(), sent.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)
	require.NotNil(t, stored.ReadAt)
	firstReadAt := *stored.ReadAt

	// Marking again is a no-op and keeps the original timestamp.
	require.NoError(t, MarkMessageRead(context.Background(), store, testLogger(), volunteer.ID, sent.ID))
	stored, err = store.GetMessage(context.Background(), sent.ID)
	require.NoError(t, err)
	assert.Equal(t, firstReadAt, *stored.ReadAt)
}

func TestMarkMessageReadGuards(t *testing.T) {
	store := newFakeStore()
	requester, _, request := assignedRequest(t, store)
	outsider := addUser(t, store, model.RoleVolunteer)

	sent, err := SendMessage(context.Background(), store, testLogger(), requester.ID, request.ID, "Mensaje sin leer")
	require.NoError(t, err)

	// The sender cannot mark their own message read.
	err = MarkMessageRead(context.Background(), store, testLogger(), requester.ID, sent.ID)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	err = MarkMessageRead(context.Background(), store, testLogger(), outsider.ID, sent.ID)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}
