package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionutT77/PourPal/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:        1,
		Email:     "ana@example.com",
		Username:  "ana",
		FirstName: "Ana",
		Is18Plus:  true,
	}
}

func TestLoginPersistsAcrossRestart(t *testing.T) {
	storage := &MemoryStorage{}

	store := NewStore(storage)
	require.NoError(t, store.Initialize())
	require.False(t, store.IsAuthenticated())

	require.NoError(t, store.Login(testUser()))
	require.True(t, store.IsAuthenticated())

	// Simulated reload: a fresh store over the same storage.
	restored := NewStore(storage)
	require.NoError(t, restored.Initialize())
	require.True(t, restored.IsAuthenticated())

	sess, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, testUser(), sess.User)
}

func TestInitializeDiscardsCorruptRecord(t *testing.T) {
	storage := &MemoryStorage{}
	require.NoError(t, storage.Save([]byte("{not json")))

	store := NewStore(storage)
	require.NoError(t, store.Initialize())
	assert.False(t, store.IsAuthenticated())

	// The bad record is gone, not just ignored.
	_, err := storage.Load()
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestInitializeDiscardsEmptyIdentity(t *testing.T) {
	storage := &MemoryStorage{}
	require.NoError(t, storage.Save([]byte(`{"user":{}}`)))

	store := NewStore(storage)
	require.NoError(t, store.Initialize())
	assert.False(t, store.IsAuthenticated())
}

func TestLogoutClearsEvenWhenStorageFails(t *testing.T) {
	storage := &MemoryStorage{FailClear: true}
	store := NewStore(storage)
	require.NoError(t, store.Login(testUser()))

	err := store.Logout()
	assert.Error(t, err)
	assert.False(t, store.IsAuthenticated())

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestUpdateUserMergesAndRepersists(t *testing.T) {
	storage := &MemoryStorage{}
	store := NewStore(storage)
	require.NoError(t, store.Login(testUser()))

	bio := "here for trivia nights"
	first := "Ana-Maria"
	require.NoError(t, store.UpdateUser(models.UserPatch{FirstName: &first, Bio: &bio}))

	sess, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "Ana-Maria", sess.User.FirstName)
	assert.Equal(t, "here for trivia nights", sess.User.Profile.Bio)
	// Untouched fields survive the merge.
	assert.Equal(t, "ana", sess.User.Username)

	restored := NewStore(storage)
	require.NoError(t, restored.Initialize())
	sess, _ = restored.Current()
	assert.Equal(t, "Ana-Maria", sess.User.FirstName)
}

func TestUpdateUserWithoutSession(t *testing.T) {
	store := NewStore(&MemoryStorage{})
	bio := "nope"
	err := store.UpdateUser(models.UserPatch{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestOnChangeFiresOnTransitions(t *testing.T) {
	store := NewStore(&MemoryStorage{})

	var transitions []bool
	store.OnChange(func(authenticated bool) {
		transitions = append(transitions, authenticated)
	})

	require.NoError(t, store.Login(testUser()))
	require.NoError(t, store.Logout())
	assert.Equal(t, []bool{true, false}, transitions)
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := t.TempDir() + "/session.json"
	storage := NewFileStorage(path)

	_, err := storage.Load()
	require.ErrorIs(t, err, ErrNoRecord)

	require.NoError(t, storage.Save([]byte(`{"user":{"id":1}}`)))
	data, err := storage.Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"id":1}}`, string(data))

	require.NoError(t, storage.Clear())
	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoRecord)

	// Clearing twice is fine.
	assert.NoError(t, storage.Clear())
}
