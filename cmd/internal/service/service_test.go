package service

import (
	sqlitedb "calpal/cmd/internal/domain/sqlite"
	"calpal/cmd/internal/domain/sqlite/repository"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/validators"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the services under test over an in-memory database, the same
// way main does over the real one.
type testEnv struct {
	db          *gorm.DB
	userRepo    *repository.DefaultUserRepository
	sessionRepo *repository.DefaultSessionRepository
	eventRepo   *repository.DefaultEventRepository
	noteRepo    *repository.DefaultNoteRepository

	users  *DefaultUserService
	events *DefaultEventService
	notes  *DefaultNoteService
	tokens *utils.Tokens
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlitedb.Init("file::memory:")
	require.NoError(t, err)

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("hasupper", validators.HasUpper))
	require.NoError(t, validate.RegisterValidation("haslower", validators.HasLower))
	require.NoError(t, validate.RegisterValidation("hasdigit", validators.HasDigit))
	require.NoError(t, validate.RegisterValidation("hasspecial", validators.HasSpecial))
	require.NoError(t, validate.RegisterValidation("nospaces", validators.NoWhiteSpaces))
	require.NoError(t, validate.RegisterValidation("dateformat", validators.IsDateFormat))
	require.NoError(t, validate.RegisterValidation("timeformat", validators.IsTimeFormat))

	env := &testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		sessionRepo: repository.NewSessionRepository(db),
		eventRepo:   repository.NewEventRepository(db),
		noteRepo:    repository.NewNoteRepository(db),
		tokens:      utils.NewTokens([]byte("test-secret"), time.Hour),
	}
	env.users = NewUserService(env.userRepo, env.sessionRepo, validate, env.tokens)
	env.events = NewEventService(env.eventRepo, validate)
	env.notes = NewNoteService(env.noteRepo, env.eventRepo, validate)
	return env
}

// signUpAndLogin registers a user and makes it the active session, returning
// its id.
func (env *testEnv) signUpAndLogin(t *testing.T, username string) int {
	t.Helper()

	apierr := env.users.SignUp(&SignUpRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		Username:  username,
		Password:  "Sup3r-Secret",
	})
	require.Nil(t, apierr)

	_, apierr = env.users.Login(&LoginRequest{Username: username, Password: "Sup3r-Secret"})
	require.Nil(t, apierr)

	user, err := env.userRepo.FindByUsername(username)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.ID
}
