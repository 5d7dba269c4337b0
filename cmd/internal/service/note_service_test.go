package service

import (
	"calpal/cmd/internal/domain/entity"
	"calpal/cmd/internal/utils/apierror"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes_CRUD(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUpAndLogin(t, "writer")

	event, apierr := env.events.CreateEvent(&EventRequest{Name: "standup", Date: "2025-06-01", Time: "09:30"}, userID)
	require.Nil(t, apierr)

	note, apierr := env.notes.CreateNote(event.ID, &NoteRequest{Content: "prepare updates"}, userID)
	require.Nil(t, apierr)
	assert.Equal(t, event.ID, note.EventID)

	updated, apierr := env.notes.UpdateNote(note.ID, &NoteRequest{Content: "updates sent"}, userID)
	require.Nil(t, apierr)
	assert.Equal(t, "updates sent", updated.Content)

	require.Nil(t, env.notes.DeleteNote(note.ID, userID))

	notes, apierr := env.notes.GetNotesForEvent(event.ID, userID)
	require.Nil(t, apierr)
	assert.Empty(t, notes)
}

func TestNotes_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUpAndLogin(t, "journal")

	event, apierr := env.events.CreateEvent(&EventRequest{Name: "trip", Date: "2025-06-01", Time: "09:30"}, userID)
	require.Nil(t, apierr)

	require.NoError(t, env.noteRepo.Save(&entity.Note{EventID: event.ID, Content: "older", CreatedAt: 1000}))
	require.NoError(t, env.noteRepo.Save(&entity.Note{EventID: event.ID, Content: "newer", CreatedAt: 2000}))

	notes, apierr := env.notes.GetNotesForEvent(event.ID, userID)
	require.Nil(t, apierr)
	require.Len(t, notes, 2)
	assert.Equal(t, "newer", notes[0].Content)
	assert.Equal(t, "older", notes[1].Content)
}

func TestNotes_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUpAndLogin(t, "owner")
	intruder := env.signUpAndLogin(t, "intruder")

	event, apierr := env.events.CreateEvent(&EventRequest{Name: "secret", Date: "2025-06-01", Time: "09:30"}, owner)
	require.Nil(t, apierr)
	note, apierr := env.notes.CreateNote(event.ID, &NoteRequest{Content: "mine"}, owner)
	require.Nil(t, apierr)

	_, apierr = env.notes.CreateNote(event.ID, &NoteRequest{Content: "theirs"}, intruder)
	assert.Equal(t, apierror.NotFoundError, apierr)

	_, apierr = env.notes.GetNotesForEvent(event.ID, intruder)
	assert.Equal(t, apierror.NotFoundError, apierr)

	_, apierr = env.notes.UpdateNote(note.ID, &NoteRequest{Content: "hijacked"}, intruder)
	assert.Equal(t, apierror.NotFoundError, apierr)

	apierr = env.notes.DeleteNote(note.ID, intruder)
	assert.Equal(t, apierror.NotFoundError, apierr)
}
