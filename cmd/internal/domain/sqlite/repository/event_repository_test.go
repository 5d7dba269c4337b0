package repository

import (
	"calpal/cmd/internal/domain/entity"
	sqlitedb "calpal/cmd/internal/domain/sqlite"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlitedb.Init("file::memory:")
	require.NoError(t, err)
	return db
}

func seedEvent(t *testing.T, repo *DefaultEventRepository, userId int, name, date, tm string) *entity.Event {
	t.Helper()
	event := &entity.Event{UserID: userId, Name: name, Date: date, Time: tm}
	require.NoError(t, repo.Save(event))
	return event
}

func TestFindNext_PicksLaterEventSameDay(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	seedEvent(t, repo, 1, "morning", "2025-06-01", "09:00")
	seedEvent(t, repo, 1, "afternoon", "2025-06-01", "14:00")

	next, err := repo.FindNextByUserFromDateTime(1, "2025-06-01", "10:00")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "afternoon", next.Name)
}

func TestFindNext_InclusiveAtReferencePoint(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	seedEvent(t, repo, 1, "exact", "2025-06-01", "10:00")

	next, err := repo.FindNextByUserFromDateTime(1, "2025-06-01", "10:00")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "exact", next.Name)
}

func TestFindNext_CrossesToLaterDate(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	seedEvent(t, repo, 1, "tomorrow-early", "2025-06-02", "06:00")
	seedEvent(t, repo, 1, "today-late", "2025-06-01", "23:30")

	next, err := repo.FindNextByUserFromDateTime(1, "2025-06-01", "23:45")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "tomorrow-early", next.Name)
}

func TestFindNext_NeverReturnsPastEvent(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	seedEvent(t, repo, 1, "a", "2025-05-30", "08:00")
	seedEvent(t, repo, 1, "b", "2025-06-01", "09:59")
	seedEvent(t, repo, 1, "c", "2025-06-01", "10:00")
	seedEvent(t, repo, 1, "d", "2025-07-15", "00:00")

	refs := [][2]string{
		{"2025-06-01", "10:00"},
		{"2025-06-01", "00:00"},
		{"2025-06-02", "12:00"},
		{"2025-08-01", "00:00"},
	}

	for _, ref := range refs {
		next, err := repo.FindNextByUserFromDateTime(1, ref[0], ref[1])
		require.NoError(t, err)
		if next == nil {
			continue
		}
		if next.Date == ref[0] {
			assert.GreaterOrEqual(t, next.Time, ref[1])
		} else {
			assert.Greater(t, next.Date, ref[0])
		}
	}
}

func TestFindNext_TieBreaksOnLowestID(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	first := seedEvent(t, repo, 1, "first", "2025-06-01", "10:00")
	seedEvent(t, repo, 1, "second", "2025-06-01", "10:00")

	next, err := repo.FindNextByUserFromDateTime(1, "2025-06-01", "10:00")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, first.ID, next.ID)
}

func TestFindNext_ScopedToUser(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	seedEvent(t, repo, 2, "other-user", "2025-06-01", "11:00")
	seedEvent(t, repo, 1, "mine", "2025-06-03", "09:00")

	next, err := repo.FindNextByUserFromDateTime(1, "2025-06-01", "10:00")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "mine", next.Name)
}

func TestFindNext_NoneIsNotAnError(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	seedEvent(t, repo, 1, "past", "2025-01-01", "09:00")

	next, err := repo.FindNextByUserFromDateTime(1, "2025-06-01", "10:00")
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestFindByUserAndDate_OrderedByTime(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	seedEvent(t, repo, 1, "late", "2025-06-01", "18:00")
	seedEvent(t, repo, 1, "early", "2025-06-01", "07:00")
	seedEvent(t, repo, 1, "other-day", "2025-06-02", "07:30")

	events, err := repo.FindByUserAndDate(1, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "early", events[0].Name)
	assert.Equal(t, "late", events[1].Name)
}

func TestDelete_CascadesNotes(t *testing.T) {
	db := newTestDB(t)
	eventRepo := NewEventRepository(db)
	noteRepo := NewNoteRepository(db)

	event := seedEvent(t, eventRepo, 1, "with-notes", "2025-06-01", "10:00")
	keep := seedEvent(t, eventRepo, 1, "keep", "2025-06-02", "10:00")
	require.NoError(t, noteRepo.Save(&entity.Note{EventID: event.ID, Content: "bring slides"}))
	require.NoError(t, noteRepo.Save(&entity.Note{EventID: keep.ID, Content: "unrelated"}))

	require.NoError(t, eventRepo.Delete(event))

	orphaned, err := noteRepo.FindByEvent(event.ID)
	require.NoError(t, err)
	assert.Empty(t, orphaned)

	kept, err := noteRepo.FindByEvent(keep.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestMarkNotified(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	event := seedEvent(t, repo, 1, "soon", "2025-06-01", "10:00")

	require.NoError(t, repo.MarkNotified(event.ID))

	got, err := repo.FindByID(event.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Notified)
}

func TestMarkNotified_MissingRowIsNoOp(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	assert.NoError(t, repo.MarkNotified(9999))
}

func TestExistsByUserDateTime(t *testing.T) {
	repo := NewEventRepository(newTestDB(t))
	seedEvent(t, repo, 1, "slot", "2025-06-01", "10:00")

	taken, err := repo.ExistsByUserDateTime(1, "2025-06-01", "10:00")
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.ExistsByUserDateTime(1, "2025-06-01", "10:30")
	require.NoError(t, err)
	assert.False(t, free)

	otherUser, err := repo.ExistsByUserDateTime(2, "2025-06-01", "10:00")
	require.NoError(t, err)
	assert.False(t, otherUser)
}
