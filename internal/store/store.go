// Package store is the document persistence layer. Every entity family lives
// in one collection of documents keyed by a string identifier; the concrete
// backends are MongoDB, Postgres JSONB tables and an in-process map.
//
// Documents are encoded with their bson struct tags on every backend so the
// same entity type round-trips identically regardless of driver.
package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Collection names.
const (
	Users                   = "users"
	Gyms                    = "gyms"
	ExerciseTypes           = "exercise_types"
	Challenges              = "challenges"
	ChallengeParticipations = "challenge_participations"
	Badges                  = "badges"
	UserBadges              = "user_badges"
)

// Filter is a conjunction of top-level field equalities. Values should be
// strings or bools; richer matching happens in the services.
type Filter map[string]any

// Index describes a secondary index on a collection.
type Index struct {
	Collection string
	Fields     []string
	Unique     bool
}

// Name returns a stable identifier for the index.
func (i Index) Name() string {
	name := i.Collection
	for _, f := range i.Fields {
		name += "_" + f
	}
	if i.Unique {
		return name + "_uniq"
	}
	return name + "_idx"
}

// Cursor iterates over documents returned by Find. It matches the shape of
// *mongo.Cursor so the mongo backend can return its cursor as is.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(v any) error
	Err() error
	Close(ctx context.Context) error
}

// Collection is one document collection.
type Collection interface {
	Insert(ctx context.Context, id string, doc any) error
	Replace(ctx context.Context, id string, doc any) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string, out any) error
	Find(ctx context.Context, filter Filter) (Cursor, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Database hands out collections and owns the underlying connection.
type Database interface {
	Collection(name string) Collection
	EnsureIndexes(ctx context.Context, indexes []Index) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Indexes is the index set every backend creates at start-up.
var Indexes = []Index{
	{Collection: Users, Fields: []string{"email"}, Unique: true},
	{Collection: Users, Fields: []string{"role"}},
	{Collection: Gyms, Fields: []string{"ownerId"}},
	{Collection: Gyms, Fields: []string{"status"}},
	{Collection: ExerciseTypes, Fields: []string{"name"}, Unique: true},
	{Collection: Challenges, Fields: []string{"creatorId"}},
	{Collection: Challenges, Fields: []string{"gymId"}},
	{Collection: Challenges, Fields: []string{"status"}},
	{Collection: ChallengeParticipations, Fields: []string{"userId", "challengeId"}, Unique: true},
	{Collection: ChallengeParticipations, Fields: []string{"challengeId"}},
	{Collection: ChallengeParticipations, Fields: []string{"userId"}},
	{Collection: Badges, Fields: []string{"name"}, Unique: true},
	{Collection: UserBadges, Fields: []string{"userId", "badgeId"}, Unique: true},
	{Collection: UserBadges, Fields: []string{"userId"}},
}

// FindAll drains a Find into a typed slice.
func FindAll[T any](ctx context.Context, c Collection, filter Filter) ([]T, error) {
	cur, err := c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		out = append(out, item)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne returns the first document matching filter or ErrNotFound.
func FindOne[T any](ctx context.Context, c Collection, filter Filter) (T, error) {
	var zero T
	cur, err := c.Find(ctx, filter)
	if err != nil {
		return zero, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return zero, err
		}
		return zero, ErrNotFound
	}
	var item T
	if err := cur.Decode(&item); err != nil {
		return zero, fmt.Errorf("failed to decode document: %w", err)
	}
	return item, nil
}

// Get loads a document by id into a typed value.
func Get[T any](ctx context.Context, c Collection, id string) (T, error) {
	var item T
	err := c.Get(ctx, id, &item)
	return item, err
}
