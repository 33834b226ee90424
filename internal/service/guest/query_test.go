package guest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
)

func queryGuest(name, phone, email string, status guest.Status) guest.Guest {
	return guest.Guest{
		ID:             name,
		Name:           name,
		Phone:          phone,
		Email:          email,
		Status:         status,
		Companions:     []string{},
		InvitationCode: "C-" + name,
		InvitationType: guest.TypeManual,
	}
}

func TestFilterGuests(t *testing.T) {
	t.Parallel()

	ana := queryGuest("Ana", "555-0001", "ana@example.com", guest.StatusConfirmed)
	ana.Companions = []string{"Luis"}
	bob := queryGuest("Bob", "555-0002", "", guest.StatusInvited)
	carla := queryGuest("Carla", "777-0003", "carla@mail.com", guest.StatusPending)
	guests := []guest.Guest{ana, bob, carla}

	got := filterGuests(guests, guest.GuestFilters{Status: "confirmed"})
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)

	// "all" and empty status pass everything through.
	assert.Len(t, filterGuests(guests, guest.GuestFilters{Status: "all"}), 3)
	assert.Len(t, filterGuests(guests, guest.GuestFilters{}), 3)

	// Search is case-insensitive and matches name, phone or email.
	assert.Len(t, filterGuests(guests, guest.GuestFilters{Search: "aNa"}), 1)
	assert.Len(t, filterGuests(guests, guest.GuestFilters{Search: "555"}), 2)
	assert.Len(t, filterGuests(guests, guest.GuestFilters{Search: "mail.com"}), 1)
	assert.Empty(t, filterGuests(guests, guest.GuestFilters{Search: "zzz"}))

	hasCompanions := true
	got = filterGuests(guests, guest.GuestFilters{HasCompanions: &hasCompanions})
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)

	noCompanions := false
	assert.Len(t, filterGuests(guests, guest.GuestFilters{HasCompanions: &noCompanions}), 2)

	// Filters combine as a conjunction.
	got = filterGuests(guests, guest.GuestFilters{Status: "invited", Search: "777"})
	assert.Empty(t, got)
}

func TestFilterGuests_DateRange(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
	}

	early := queryGuest("Early", "1", "", guest.StatusInvited)
	early.DateInvited = day(1)
	late := queryGuest("Late", "2", "", guest.StatusInvited)
	late.DateInvited = day(20)
	never := queryGuest("Never", "3", "", guest.StatusPending)
	guests := []guest.Guest{early, late, never}

	from, to := day(1), day(10)

	// The range is inclusive on both ends; guests never invited drop out.
	got := filterGuests(guests, guest.GuestFilters{DateFrom: &from, DateTo: &to})
	require.Len(t, got, 1)
	assert.Equal(t, "Early", got[0].Name)

	got = filterGuests(guests, guest.GuestFilters{DateFrom: &from})
	assert.Len(t, got, 2)
}

func TestSortGuests(t *testing.T) {
	t.Parallel()

	guests := []guest.Guest{
		queryGuest("Carla", "3", "", guest.StatusPending),
		queryGuest("Ana", "1", "", guest.StatusPending),
		queryGuest("Bob", "2", "", guest.StatusPending),
	}

	asc, err := sortGuests(guests, "name", guest.SortAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Bob", "Carla"}, names(asc))

	desc, err := sortGuests(guests, "name", guest.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Carla", "Bob", "Ana"}, names(desc))

	// The input slice is never reordered.
	assert.Equal(t, []string{"Carla", "Ana", "Bob"}, names(guests))

	_, err = sortGuests(guests, "shoe_size", guest.SortAsc)
	assert.ErrorIs(t, err, guest.ErrInvalidSortField)

	_, err = sortGuests(guests, "name", "sideways")
	assert.ErrorIs(t, err, guest.ErrInvalidSortOrder)

	// A bad order is rejected even without a sort field.
	_, err = sortGuests(guests, "", "sideways")
	assert.ErrorIs(t, err, guest.ErrInvalidSortOrder)
}

func TestSortGuests_MissingValuesSortLast(t *testing.T) {
	t.Parallel()

	invited := queryGuest("Invited", "1", "", guest.StatusInvited)
	invited.DateInvited = time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	pending := queryGuest("Pending", "2", "", guest.StatusPending)
	guests := []guest.Guest{pending, invited}

	asc, err := sortGuests(guests, "date_invited", guest.SortAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Invited", "Pending"}, names(asc))

	// Guests without a value sink to the end in either direction.
	desc, err := sortGuests(guests, "date_invited", guest.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Invited", "Pending"}, names(desc))
}

func TestPaginateGuests(t *testing.T) {
	t.Parallel()

	guests := make([]guest.Guest, 5)
	for i := range guests {
		guests[i] = queryGuest(string(rune('A'+i)), "", "", guest.StatusPending)
	}

	page1, err := paginateGuests(guests, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)
	assert.Len(t, page1.Items, 2)

	page3, err := paginateGuests(guests, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 1)
	assert.False(t, page3.HasNext)
	assert.True(t, page3.HasPrev)

	// Past the last page: empty items, correct totals, no error.
	page9, err := paginateGuests(guests, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page9.Items)
	assert.Equal(t, 5, page9.Total)
	assert.Equal(t, 3, page9.TotalPages)

	_, err = paginateGuests(guests, 0, 2)
	assert.ErrorIs(t, err, guest.ErrInvalidPagination)
	_, err = paginateGuests(guests, 1, 0)
	assert.ErrorIs(t, err, guest.ErrInvalidPagination)
}

func TestPaginateGuests_Completeness(t *testing.T) {
	t.Parallel()

	guests := make([]guest.Guest, 23)
	for i := range guests {
		guests[i] = queryGuest(string(rune('a'+i)), "", "", guest.StatusPending)
	}

	for _, limit := range []int{1, 4, 7, 23, 50} {
		var collected []string
		page := 1
		for {
			p, err := paginateGuests(guests, page, limit)
			require.NoError(t, err)
			collected = append(collected, names(p.Items)...)
			if !p.HasNext {
				break
			}
			page++
		}
		// Concatenating all pages reproduces the input exactly once.
		assert.Equal(t, names(guests), collected, "limit %d", limit)
	}
}

func TestGetFilteredGuests_ScenarioPagedConfirmed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	for _, name := range []string{"C", "A", "E", "B", "D"} {
		g := mustAdd(t, svc, guest.CreateGuestRequest{Name: name, Phone: "555-" + name, SendImmediately: true})
		_, err := svc.UpdateGuestStatus(ctx, g.ID, guest.StatusConfirmed, nil)
		require.NoError(t, err)
	}

	filters := guest.GuestFilters{Status: "confirmed", SortBy: "name", SortOrder: guest.SortAsc}

	page1, err := svc.GetFilteredGuests(ctx, filters, &guest.Pagination{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(page1.Items))
	assert.Equal(t, 3, page1.TotalPages)

	page2, err := svc.GetFilteredGuests(ctx, filters, &guest.Pagination{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, names(page2.Items))

	page3, err := svc.GetFilteredGuests(ctx, filters, &guest.Pagination{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"E"}, names(page3.Items))
}

func TestGetFilteredGuests_NoPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	mustAdd(t, svc, guest.CreateGuestRequest{Name: "Bob", Phone: "2"})
	mustAdd(t, svc, guest.CreateGuestRequest{Name: "Ana", Phone: "1"})

	result, err := svc.GetFilteredGuests(ctx, guest.GuestFilters{SortBy: "name"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Bob"}, names(result.Items))
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 2, result.Total)
	assert.False(t, result.HasNext)
	assert.False(t, result.HasPrev)
}

func names(guests []guest.Guest) []string {
	out := make([]string, 0, len(guests))
	for _, g := range guests {
		out = append(out, g.Name)
	}
	return out
}
