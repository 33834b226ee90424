package guest

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
)

// matchesFilters applies every set filter as a conjunction.
func matchesFilters(g guest.Guest, f guest.GuestFilters) bool {
	if f.Status != "" && f.Status != "all" && string(g.Status) != f.Status {
		return false
	}

	if f.InvitationType != "" && f.InvitationType != "all" && string(g.InvitationType) != f.InvitationType {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(strings.TrimSpace(f.Search))
		if needle != "" &&
			!strings.Contains(strings.ToLower(g.Name), needle) &&
			!strings.Contains(strings.ToLower(g.Phone), needle) &&
			!strings.Contains(strings.ToLower(g.Email), needle) {
			return false
		}
	}

	if f.DateFrom != nil && (g.DateInvited.IsZero() || g.DateInvited.Before(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && (g.DateInvited.IsZero() || g.DateInvited.After(*f.DateTo)) {
		return false
	}

	if f.HasCompanions != nil && g.HasCompanions() != *f.HasCompanions {
		return false
	}

	return true
}

func filterGuests(guests []guest.Guest, f guest.GuestFilters) []guest.Guest {
	out := make([]guest.Guest, 0, len(guests))
	for _, g := range guests {
		if matchesFilters(g, f) {
			out = append(out, g)
		}
	}
	return out
}

// fieldComparator orders one sortable field. present reports whether the
// guest has a value for the field; guests without one sink to the end of the
// result no matter the sort direction.
type fieldComparator struct {
	present func(guest.Guest) bool
	compare func(*collate.Collator, guest.Guest, guest.Guest) int
}

func stringComparator(get func(guest.Guest) string) fieldComparator {
	return fieldComparator{
		present: func(g guest.Guest) bool { return get(g) != "" },
		compare: func(c *collate.Collator, a, b guest.Guest) int {
			return c.CompareString(get(a), get(b))
		},
	}
}

func timeComparator(get func(guest.Guest) int64) fieldComparator {
	return fieldComparator{
		present: func(g guest.Guest) bool { return get(g) != 0 },
		compare: func(_ *collate.Collator, a, b guest.Guest) int {
			switch {
			case get(a) < get(b):
				return -1
			case get(a) > get(b):
				return 1
			}
			return 0
		},
	}
}

// Closed set of sortable fields; no reflection-based field access.
var comparators = map[string]fieldComparator{
	"name":   stringComparator(func(g guest.Guest) string { return g.Name }),
	"phone":  stringComparator(func(g guest.Guest) string { return g.Phone }),
	"email":  stringComparator(func(g guest.Guest) string { return g.Email }),
	"status": stringComparator(func(g guest.Guest) string { return string(g.Status) }),
	"date_invited": timeComparator(func(g guest.Guest) int64 {
		if g.DateInvited.IsZero() {
			return 0
		}
		return g.DateInvited.UnixNano()
	}),
	"date_responded": timeComparator(func(g guest.Guest) int64 {
		if g.DateResponded.IsZero() {
			return 0
		}
		return g.DateResponded.UnixNano()
	}),
	"last_contact_date": timeComparator(func(g guest.Guest) int64 {
		if g.LastContactDate.IsZero() {
			return 0
		}
		return g.LastContactDate.UnixNano()
	}),
	"contact_attempts": {
		present: func(guest.Guest) bool { return true },
		compare: func(_ *collate.Collator, a, b guest.Guest) int {
			return a.ContactAttempts - b.ContactAttempts
		},
	},
}

// sortGuests stably orders a copy of guests by the named field. Strings use
// English collation, which is deterministic for any fixed input set. An empty
// sortBy keeps insertion order.
func sortGuests(guests []guest.Guest, sortBy, sortOrder string) ([]guest.Guest, error) {
	if sortOrder != "" && sortOrder != guest.SortAsc && sortOrder != guest.SortDesc {
		return nil, guest.ErrInvalidSortOrder
	}
	if sortBy == "" {
		return guests, nil
	}

	cmp, ok := comparators[sortBy]
	if !ok {
		return nil, guest.ErrInvalidSortField
	}
	desc := sortOrder == guest.SortDesc

	out := make([]guest.Guest, len(guests))
	copy(out, guests)

	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := cmp.present(out[i]), cmp.present(out[j])
		if pi != pj {
			// Missing values sort last regardless of direction.
			return pi
		}
		if !pi {
			return false
		}

		r := cmp.compare(c, out[i], out[j])
		if desc {
			return r > 0
		}
		return r < 0
	})

	return out, nil
}

// paginateGuests slices one page out of an already filtered and sorted list.
// A page past the end yields empty items with correct totals.
func paginateGuests(guests []guest.Guest, page, limit int) (guest.PagedGuests, error) {
	if page < 1 || limit <= 0 {
		return guest.PagedGuests{}, guest.ErrInvalidPagination
	}

	total := len(guests)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	items := []guest.Guest{}
	start := (page - 1) * limit
	if start < total {
		end := start + limit
		if end > total {
			end = total
		}
		items = append(items, guests[start:end]...)
	}

	return guest.PagedGuests{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}, nil
}
