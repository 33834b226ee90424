package guest

import (
	"context"
	"io"
)

// GuestService defines the engine boundary consumed by presentation code.
// Mutations return typed errors; lookups report absence through the ok bool.
type GuestService interface {
	// AddGuest validates the request, assigns a fresh invitation code and
	// stores the guest. SendImmediately creates it already invited.
	AddGuest(ctx context.Context, req CreateGuestRequest) (Guest, error)

	// UpdateGuest applies a partial merge to an existing guest.
	UpdateGuest(ctx context.Context, id string, req UpdateGuestRequest) (Guest, error)

	// UpdateGuestStatus moves a guest through the lifecycle state machine.
	// Entering confirmed/declined stamps DateResponded if not already set.
	UpdateGuestStatus(ctx context.Context, id string, status Status, extra *StatusExtra) (Guest, error)

	// DeleteGuest removes a guest and permanently retires its code.
	DeleteGuest(ctx context.Context, id string) error

	// SendInvitation sends the first invitation to a pending guest.
	SendInvitation(ctx context.Context, id string) (Guest, error)

	// ResendInvitation re-contacts an already invited guest. It never
	// changes the status, only the contact bookkeeping.
	ResendInvitation(ctx context.Context, id string) (Guest, error)

	// ConfirmAttendance records a response submitted through the public
	// confirmation form, looked up by invitation code.
	ConfirmAttendance(ctx context.Context, req ConfirmAttendanceRequest) (Guest, error)

	// BulkInvite ingests a batch of creation requests independently;
	// per-item failures are collected in the result, never raised.
	BulkInvite(ctx context.Context, reqs []CreateGuestRequest, opts BulkInviteOptions) (BulkInviteResult, error)

	GetGuest(ctx context.Context, id string) (Guest, bool, error)
	GetGuestByCode(ctx context.Context, code string) (Guest, bool, error)
	FindGuestByPhone(ctx context.Context, phone string) (Guest, bool, error)

	// GetFilteredGuests applies filter, sort and pagination in that order.
	// A nil pagination returns the whole result as page 1 of 1.
	GetFilteredGuests(ctx context.Context, filters GuestFilters, page *Pagination) (PagedGuests, error)

	GetStats(ctx context.Context) (GuestStats, error)
	GetStatsByStatus(ctx context.Context) (map[Status]int, error)

	// ExportGuests serializes a filtered view of the list.
	ExportGuests(ctx context.Context, opts ExportOptions) ([]byte, error)

	// ImportGuests parses tabular CSV data into creation requests and
	// delegates to BulkInvite.
	ImportGuests(ctx context.Context, r io.Reader, opts BulkInviteOptions) (BulkInviteResult, error)

	// Demo and reset affordances. They bulk-replace the collection and
	// keep every invariant intact.
	LoadDemoData(ctx context.Context) error
	ClearAllData(ctx context.Context) error
	ResetToInitialState(ctx context.Context) error
}
