package gym

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var ErrNotPending = errors.New("Gym is not pending approval")

type Gym struct {
	ID          string    `bson:"_id"         json:"id"`
	Name        string    `bson:"name"        json:"name"`
	Address     string    `bson:"address"     json:"address"`
	Contact     string    `bson:"contact"     json:"contact"`
	Description string    `bson:"description" json:"description"`
	Capacity    int       `bson:"capacity"    json:"capacity"`
	Equipment   []string  `bson:"equipment"   json:"equipment"`
	Activities  []string  `bson:"activities"  json:"activities"`
	OwnerID     string    `bson:"ownerId"     json:"ownerId"`
	Status      Status    `bson:"status"      json:"status"`
	CreatedAt   time.Time `bson:"createdAt"   json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"   json:"updatedAt"`
}

type Details struct {
	Name        string
	Address     string
	Contact     string
	Description string
	Capacity    int
	Equipment   []string
	Activities  []string
}

func New(ownerID string, d Details, now time.Time) Gym {
	return Gym{
		ID:          uuid.NewString(),
		Name:        d.Name,
		Address:     d.Address,
		Contact:     d.Contact,
		Description: d.Description,
		Capacity:    d.Capacity,
		Equipment:   cloneOrEmpty(d.Equipment),
		Activities:  cloneOrEmpty(d.Activities),
		OwnerID:     ownerID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithDetails applies an update; empty strings, a zero capacity and nil
// lists leave the current value in place.
func (g Gym) WithDetails(d Details, now time.Time) Gym {
	if d.Name != "" {
		g.Name = d.Name
	}
	if d.Address != "" {
		g.Address = d.Address
	}
	if d.Contact != "" {
		g.Contact = d.Contact
	}
	if d.Description != "" {
		g.Description = d.Description
	}
	if d.Capacity != 0 {
		g.Capacity = d.Capacity
	}
	if d.Equipment != nil {
		g.Equipment = cloneOrEmpty(d.Equipment)
	} else {
		g.Equipment = cloneOrEmpty(g.Equipment)
	}
	if d.Activities != nil {
		g.Activities = cloneOrEmpty(d.Activities)
	} else {
		g.Activities = cloneOrEmpty(g.Activities)
	}
	g.UpdatedAt = now
	return g
}

func (g Gym) Approve(now time.Time) (Gym, error) {
	return g.transition(StatusApproved, now)
}

func (g Gym) Reject(now time.Time) (Gym, error) {
	return g.transition(StatusRejected, now)
}

func (g Gym) transition(to Status, now time.Time) (Gym, error) {
	if g.Status != StatusPending {
		return g, ErrNotPending
	}
	g.Status = to
	g.UpdatedAt = now
	return g, nil
}

func (g Gym) IsApproved() bool { return g.Status == StatusApproved }
func (g Gym) IsPending() bool  { return g.Status == StatusPending }

func cloneOrEmpty(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
