package service

import (
	"calpal/cmd/internal/utils/apierror"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp_DuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	env.signUpAndLogin(t, "taken")

	apierr := env.users.SignUp(&SignUpRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "taken@example.com",
		Username:  "someone-else",
		Password:  "Sup3r-Secret",
	})
	assert.Equal(t, apierror.UserAlreadyExistsError, apierr)
}

func TestSignUp_WeakPasswordRejected(t *testing.T) {
	env := newTestEnv(t)

	for i, password := range []string{"Sh0rt!x", "alllowercase1!", "NOLOWERCASE1!", "NoSpecials123"} {
		apierr := env.users.SignUp(&SignUpRequest{
			FirstName: "Weak",
			LastName:  "Password",
			Email:     string(rune('a'+i)) + "weak@example.com",
			Username:  "weakling-" + string(rune('a'+i)),
			Password:  password,
		})
		require.NotNil(t, apierr, "password %q should be rejected", password)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signUpAndLogin(t, "alice")

	_, apierr := env.users.Login(&LoginRequest{Username: "alice", Password: "Wrong-Pass1"})
	assert.Equal(t, apierror.CredentialsMismatchError, apierr)

	_, apierr = env.users.Login(&LoginRequest{Username: "nobody", Password: "Sup3r-Secret"})
	assert.Equal(t, apierror.CredentialsMismatchError, apierr)
}

func TestLogin_TokenCarriesIdentity(t *testing.T) {
	env := newTestEnv(t)
	env.signUpAndLogin(t, "bob")

	resp, apierr := env.users.Login(&LoginRequest{Username: "bob", Password: "Sup3r-Secret"})
	require.Nil(t, apierr)

	data, err := env.tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", data.Username)

	user, ferr := env.userRepo.FindByUsername("bob")
	require.NoError(t, ferr)
	assert.Equal(t, user.ID, data.UserID)
}

func TestLogin_SingleActiveSession(t *testing.T) {
	env := newTestEnv(t)
	aliceID := env.signUpAndLogin(t, "alice")
	bobID := env.signUpAndLogin(t, "bob")

	// Bob logged in last; only his session flag is set.
	active, err := env.sessionRepo.FindLoggedIn()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, bobID, active.UserID)
	assert.NotEqual(t, aliceID, active.UserID)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUpAndLogin(t, "leaver")

	require.Nil(t, env.users.Logout(userID))

	active, err := env.sessionRepo.FindLoggedIn()
	require.NoError(t, err)
	assert.Nil(t, active)

	// A second logout has no session to act on.
	apierr := env.users.Logout(userID)
	assert.Equal(t, apierror.NotLoggedInError, apierr)
}

func TestDeleteAccount_CascadesOwnedData(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUpAndLogin(t, "departing")

	created, apierr := env.events.CreateEvent(&EventRequest{Name: "soon gone", Date: "2025-06-01", Time: "14:00"}, userID)
	require.Nil(t, apierr)
	_, apierr = env.notes.CreateNote(created.ID, &NoteRequest{Content: "gone too"}, userID)
	require.Nil(t, apierr)

	require.Nil(t, env.users.DeleteAccount(userID))

	events, err := env.eventRepo.FindAllByUser(userID)
	require.NoError(t, err)
	assert.Empty(t, events)

	notes, err := env.noteRepo.FindByUser(userID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	session, err := env.sessionRepo.FindLoggedIn()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestPreferences_DarkModeRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signUpAndLogin(t, "nightowl")

	prefs, apierr := env.users.GetPreferences(userID)
	require.Nil(t, apierr)
	assert.False(t, prefs.DarkMode)

	prefs, apierr = env.users.SetPreferences(&PreferencesRequest{DarkMode: true}, userID)
	require.Nil(t, apierr)
	assert.True(t, prefs.DarkMode)

	prefs, apierr = env.users.GetPreferences(userID)
	require.Nil(t, apierr)
	assert.True(t, prefs.DarkMode)
}

func TestHashPassword(t *testing.T) {
	// SHA-256 hex, the credential store convention.
	assert.Equal(t,
		"2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
		HashPassword("foo"))
	assert.Len(t, HashPassword("anything"), 64)
}
