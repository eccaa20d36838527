package gym

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveOnlyFromPending(t *testing.T) {
	now := time.Now()
	g := New("owner-1", Details{Name: "Iron Temple", Capacity: 40}, now)
	require.Equal(t, StatusPending, g.Status)

	approved, err := g.Approve(now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.Equal(t, StatusPending, g.Status, "original value is untouched")

	_, err = approved.Reject(now)
	assert.ErrorIs(t, err, ErrNotPending)

	rejected, err := g.Reject(now)
	require.NoError(t, err)
	_, err = rejected.Approve(now)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestWithDetailsKeepsEmptyFields(t *testing.T) {
	now := time.Now()
	g := New("owner-1", Details{
		Name:      "Iron Temple",
		Address:   "1 Main St",
		Contact:   "555",
		Capacity:  40,
		Equipment: []string{"rack"},
	}, now)

	updated := g.WithDetails(Details{Name: "Steel Temple", Activities: []string{"yoga"}}, now.Add(time.Hour))

	assert.Equal(t, "Steel Temple", updated.Name)
	assert.Equal(t, "1 Main St", updated.Address)
	assert.Equal(t, 40, updated.Capacity)
	assert.Equal(t, []string{"rack"}, updated.Equipment)
	assert.Equal(t, []string{"yoga"}, updated.Activities)
	assert.True(t, updated.UpdatedAt.After(g.UpdatedAt))

	updated.Equipment[0] = "bench"
	assert.Equal(t, "rack", g.Equipment[0], "lists are copied, not shared")
}
