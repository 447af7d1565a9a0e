package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placepulse/placepulse/internal/domain/model"
	"github.com/placepulse/placepulse/internal/domain/port/driven"
)

func testSession() *model.Session {
	return &model.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         model.UserProfile{ID: "u1", Name: "Ada", Email: "ada@example.com"},
	}
}

func TestSessionRepo_SaveAndLoad(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepo(db, nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession()))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "access-1", got.AccessToken)
	assert.Equal(t, "refresh-1", got.RefreshToken)
	assert.Equal(t, "Ada", got.User.Name)
}

func TestSessionRepo_LoadAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepo(db, nil)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepo_SaveOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepo(db, nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession()))

	next := testSession()
	next.AccessToken = "access-2"
	next.RefreshToken = "refresh-2"
	require.NoError(t, repo.Save(ctx, next))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "access-2", got.AccessToken)
	assert.Equal(t, "refresh-2", got.RefreshToken)
	assert.Equal(t, "u1", got.User.ID, "user snapshot survives overwrite")
}

func TestSessionRepo_SaveRejectsPartialRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepo(db, nil)
	ctx := context.Background()

	partial := testSession()
	partial.RefreshToken = ""

	err := repo.Save(ctx, partial)
	require.ErrorIs(t, err, driven.ErrPartialSession)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "rejected record must not be persisted")
}

func TestSessionRepo_Clear(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepo(db, nil)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession()))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepo_ClearEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepo(db, nil)

	assert.NoError(t, repo.Clear(context.Background()), "clearing an empty slot should not error")
}

func TestSessionRepo_EncryptedRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	key := make([]byte, 32)
	copy(key, "0123456789abcdef0123456789abcdef")
	repo := NewSessionRepo(db, key)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession()))

	// The raw payload must not contain the plaintext token.
	var payload string
	err := db.Reader.QueryRowContext(ctx, `SELECT payload FROM session WHERE slot = ?`, driven.SessionSlot).Scan(&payload)
	require.NoError(t, err)
	assert.NotContains(t, payload, "access-1")

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "access-1", got.AccessToken)
}

func TestSessionRepo_WrongKeyTreatedAsAbsent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	keyA := make([]byte, 32)
	copy(keyA, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, NewSessionRepo(db, keyA).Save(ctx, testSession()))

	keyB := make([]byte, 32)
	copy(keyB, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	got, err := NewSessionRepo(db, keyB).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "undecryptable payload degrades to absent")
}

func TestSessionRepo_CorruptPayloadTreatedAsAbsent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Writer.ExecContext(ctx,
		`INSERT INTO session (slot, payload) VALUES (?, ?)`, driven.SessionSlot, "{not json")
	require.NoError(t, err)

	got, err := NewSessionRepo(db, nil).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
