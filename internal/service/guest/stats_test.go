package guest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
)

func statsGuest(status guest.Status, companions ...string) guest.Guest {
	if companions == nil {
		companions = []string{}
	}
	return guest.Guest{Status: status, Companions: companions}
}

func TestComputeStats_Empty(t *testing.T) {
	t.Parallel()

	stats := computeStats(nil)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.ResponseRate)
	assert.Zero(t, stats.ConfirmationRate)
}

func TestComputeStats_BucketMapping(t *testing.T) {
	t.Parallel()

	guests := []guest.Guest{
		statsGuest(guest.StatusConfirmed, "Luis", "Marta"),
		statsGuest(guest.StatusConfirmed),
		statsGuest(guest.StatusDeclined),
		statsGuest(guest.StatusInvited),
		statsGuest(guest.StatusInvited),
		statsGuest(guest.StatusInvited),
		statsGuest(guest.StatusPending),
		statsGuest(guest.StatusPending),
	}

	stats := computeStats(guests)

	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 2, stats.Confirmed)
	assert.Equal(t, 1, stats.Declined)
	// Invited guests awaiting a response show up as Pending; guests still
	// in the pending status are the NotInvited bucket.
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 2, stats.NotInvited)

	// Confirmed guests count themselves plus companions.
	assert.Equal(t, 4, stats.TotalConfirmedPeople)

	assert.InDelta(t, 37.5, stats.ResponseRate, 1e-9)
	assert.InDelta(t, 25.0, stats.ConfirmationRate, 1e-9)

	// The bucket identity holds.
	assert.Equal(t, stats.Total, stats.Confirmed+stats.Declined+stats.Pending+stats.NotInvited)
}

func TestComputeStats_RateBounds(t *testing.T) {
	t.Parallel()

	cases := [][]guest.Guest{
		{statsGuest(guest.StatusPending)},
		{statsGuest(guest.StatusConfirmed)},
		{statsGuest(guest.StatusDeclined), statsGuest(guest.StatusDeclined)},
		{statsGuest(guest.StatusConfirmed), statsGuest(guest.StatusInvited), statsGuest(guest.StatusPending)},
	}
	for _, guests := range cases {
		stats := computeStats(guests)
		assert.GreaterOrEqual(t, stats.ResponseRate, 0.0)
		assert.LessOrEqual(t, stats.ResponseRate, 100.0)
		assert.GreaterOrEqual(t, stats.ConfirmationRate, 0.0)
		assert.LessOrEqual(t, stats.ConfirmationRate, 100.0)
	}
}

func TestStatsByStatus(t *testing.T) {
	t.Parallel()

	tally := statsByStatus([]guest.Guest{
		statsGuest(guest.StatusConfirmed),
		statsGuest(guest.StatusConfirmed),
		statsGuest(guest.StatusPending),
	})

	assert.Equal(t, 2, tally[guest.StatusConfirmed])
	assert.Equal(t, 1, tally[guest.StatusPending])
	// Every status key is present even at zero.
	assert.Contains(t, tally, guest.StatusInvited)
	assert.Contains(t, tally, guest.StatusDeclined)
	assert.Zero(t, tally[guest.StatusInvited])
}

func TestGetStats_RecomputedAfterMutation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	created := mustAdd(t, svc, guest.CreateGuestRequest{Name: "Ana", Phone: "555-0001"})

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.NotInvited)

	_, err = svc.SendInvitation(ctx, created.ID)
	require.NoError(t, err)

	stats, err = svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.NotInvited)
	assert.Equal(t, 1, stats.Pending)
}
