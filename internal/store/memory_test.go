package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Role      string    `bson:"role"`
	Active    bool      `bson:"isActive"`
	Tags      []string  `bson:"tags"`
	CreatedAt time.Time `bson:"createdAt"`
}

func newTestMemory(t *testing.T) *MemoryDatabase {
	t.Helper()
	db := NewMemory()
	require.NoError(t, db.EnsureIndexes(context.Background(), []Index{
		{Collection: "people", Fields: []string{"email"}, Unique: true},
		{Collection: "pairs", Fields: []string{"userId", "challengeId"}, Unique: true},
	}))
	return db
}

func TestMemoryInsertGetReplaceDelete(t *testing.T) {
	ctx := context.Background()
	coll := newTestMemory(t).Collection("people")

	doc := testDoc{ID: "p1", Email: "a@example.com", Role: "client", Active: true, Tags: []string{"x"}}
	require.NoError(t, coll.Insert(ctx, doc.ID, doc))

	got, err := Get[testDoc](ctx, coll, "p1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, []string{"x"}, got.Tags)

	doc.Role = "gym_owner"
	require.NoError(t, coll.Replace(ctx, doc.ID, doc))
	got, err = Get[testDoc](ctx, coll, "p1")
	require.NoError(t, err)
	assert.Equal(t, "gym_owner", got.Role)

	require.NoError(t, coll.Delete(ctx, "p1"))
	_, err = Get[testDoc](ctx, coll, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, coll.Delete(ctx, "p1"), ErrNotFound)
	assert.ErrorIs(t, coll.Replace(ctx, "p1", doc), ErrNotFound)
}

func TestMemoryUniqueIndex(t *testing.T) {
	ctx := context.Background()
	coll := newTestMemory(t).Collection("people")

	require.NoError(t, coll.Insert(ctx, "p1", testDoc{ID: "p1", Email: "a@example.com"}))
	require.NoError(t, coll.Insert(ctx, "p2", testDoc{ID: "p2", Email: "b@example.com"}))

	err := coll.Insert(ctx, "p3", testDoc{ID: "p3", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = coll.Replace(ctx, "p2", testDoc{ID: "p2", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// replacing a document with its own key is fine
	assert.NoError(t, coll.Replace(ctx, "p1", testDoc{ID: "p1", Email: "a@example.com", Role: "client"}))
}

func TestMemoryCompoundUniqueIndex(t *testing.T) {
	ctx := context.Background()
	coll := newTestMemory(t).Collection("pairs")

	type pair struct {
		ID          string `bson:"_id"`
		UserID      string `bson:"userId"`
		ChallengeID string `bson:"challengeId"`
	}

	require.NoError(t, coll.Insert(ctx, "1", pair{ID: "1", UserID: "u1", ChallengeID: "c1"}))
	require.NoError(t, coll.Insert(ctx, "2", pair{ID: "2", UserID: "u1", ChallengeID: "c2"}))
	require.NoError(t, coll.Insert(ctx, "3", pair{ID: "3", UserID: "u2", ChallengeID: "c1"}))
	assert.ErrorIs(t, coll.Insert(ctx, "4", pair{ID: "4", UserID: "u1", ChallengeID: "c1"}), ErrDuplicate)
}

func TestMemoryFindFilters(t *testing.T) {
	ctx := context.Background()
	coll := newTestMemory(t).Collection("people")

	require.NoError(t, coll.Insert(ctx, "p1", testDoc{ID: "p1", Email: "a@example.com", Role: "client", Active: true}))
	require.NoError(t, coll.Insert(ctx, "p2", testDoc{ID: "p2", Email: "b@example.com", Role: "client", Active: false}))
	require.NoError(t, coll.Insert(ctx, "p3", testDoc{ID: "p3", Email: "c@example.com", Role: "super_admin", Active: true}))

	all, err := FindAll[testDoc](ctx, coll, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "p1", all[0].ID, "insertion order is preserved")

	clients, err := FindAll[testDoc](ctx, coll, Filter{"role": "client"})
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	activeClients, err := FindAll[testDoc](ctx, coll, Filter{"role": "client", "isActive": true})
	require.NoError(t, err)
	require.Len(t, activeClients, 1)
	assert.Equal(t, "p1", activeClients[0].ID)

	n, err := coll.Count(ctx, Filter{"isActive": true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	one, err := FindOne[testDoc](ctx, coll, Filter{"email": "c@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "p3", one.ID)

	_, err = FindOne[testDoc](ctx, coll, Filter{"email": "nobody@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	none, err := FindAll[testDoc](ctx, coll, Filter{"missingField": "x"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIndexName(t *testing.T) {
	assert.Equal(t, "users_email_uniq", Index{Collection: "users", Fields: []string{"email"}, Unique: true}.Name())
	assert.Equal(t, "gyms_ownerId_idx", Index{Collection: "gyms", Fields: []string{"ownerId"}}.Name())
}
