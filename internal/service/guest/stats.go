package guest

import "github.com/invitia/guestlist-backend-go/internal/domain/guest"

// computeStats derives the aggregate figures from the full collection.
//
// Bucket mapping: NotInvited counts guests still in the pending status,
// Pending counts invited guests awaiting a response. See guest.GuestStats.
func computeStats(guests []guest.Guest) guest.GuestStats {
	stats := guest.GuestStats{Total: len(guests)}

	for _, g := range guests {
		switch g.Status {
		case guest.StatusConfirmed:
			stats.Confirmed++
			stats.TotalConfirmedPeople += 1 + len(g.Companions)
		case guest.StatusDeclined:
			stats.Declined++
		case guest.StatusInvited:
			stats.Pending++
		case guest.StatusPending:
			stats.NotInvited++
		}
	}

	if stats.Total > 0 {
		responded := stats.Confirmed + stats.Declined
		stats.ResponseRate = float64(responded) / float64(stats.Total) * 100
		stats.ConfirmationRate = float64(stats.Confirmed) / float64(stats.Total) * 100
	}

	return stats
}

// statsByStatus tallies the raw four statuses, every key present.
func statsByStatus(guests []guest.Guest) map[guest.Status]int {
	tally := map[guest.Status]int{
		guest.StatusPending:   0,
		guest.StatusInvited:   0,
		guest.StatusConfirmed: 0,
		guest.StatusDeclined:  0,
	}
	for _, g := range guests {
		tally[g.Status]++
	}
	return tally
}
