package guest

import "context"

// GuestRepository defines the interface for guest data access.
type GuestRepository interface {
	// List returns a copy of every live guest in insertion order.
	List(ctx context.Context) ([]Guest, error)

	// Get retrieves a guest by id. Absence is reported via ok, not an error.
	Get(ctx context.Context, id string) (Guest, bool, error)

	// GetByCode retrieves a guest by invitation code.
	GetByCode(ctx context.Context, code string) (Guest, bool, error)

	// GetByPhone retrieves the first guest with the given phone.
	GetByPhone(ctx context.Context, phone string) (Guest, bool, error)

	// Insert stores a new guest. Fails with ErrDuplicateCode if the
	// invitation code is already taken or retired.
	Insert(ctx context.Context, g Guest) (Guest, error)

	// Update replaces the stored guest with the same id.
	Update(ctx context.Context, g Guest) (Guest, error)

	// Delete removes a guest and retires its invitation code so it is
	// never reissued.
	Delete(ctx context.Context, id string) error

	// ReplaceAll swaps the whole collection (demo/reset utilities).
	ReplaceAll(ctx context.Context, guests []Guest) error

	// CodeTaken reports whether a code is in use by a live guest or was
	// retired by a deletion.
	CodeTaken(ctx context.Context, code string) (bool, error)
}
