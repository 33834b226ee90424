package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
	"github.com/invitia/guestlist-backend-go/internal/pkg/blobstore"
)

// snapshotKey is the constant key the whole collection is persisted under.
const snapshotKey = "guestlist"

const snapshotSchemaVersion = 1

// snapshot is the persisted layout. Retired codes travel with the guests so
// a deleted guest's code is never reissued, even across restarts.
type snapshot struct {
	SchemaVersion int           `json:"schema_version"`
	SavedAt       time.Time     `json:"saved_at"`
	Guests        []guest.Guest `json:"guests"`
	RetiredCodes  []string      `json:"retired_codes"`
}

// GuestRepository is the authoritative in-memory guest collection. Every
// public operation takes the single coarse lock; after each successful
// mutation the snapshot is written through to the blob store best-effort.
// In-memory state is the source of truth, a failed save never rolls back.
type GuestRepository struct {
	mu           sync.RWMutex
	guests       []guest.Guest
	byID         map[string]int
	byCode       map[string]int
	retiredCodes map[string]struct{}
	store        blobstore.BlobStore
}

// NewGuestRepository builds the repository, loading the previous snapshot
// from store when one exists. A nil store keeps the collection ephemeral.
func NewGuestRepository(store blobstore.BlobStore) (*GuestRepository, error) {
	r := &GuestRepository{
		guests:       make([]guest.Guest, 0),
		byID:         make(map[string]int),
		byCode:       make(map[string]int),
		retiredCodes: make(map[string]struct{}),
		store:        store,
	}

	if store == nil {
		return r, nil
	}

	data, err := store.Load(context.Background(), snapshotKey)
	if err == blobstore.ErrNotFound {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode guest snapshot: %w", err)
	}
	if snap.SchemaVersion != snapshotSchemaVersion {
		return nil, fmt.Errorf("unsupported snapshot schema version %d", snap.SchemaVersion)
	}

	r.guests = snap.Guests
	if r.guests == nil {
		r.guests = make([]guest.Guest, 0)
	}
	for i, g := range r.guests {
		r.byID[g.ID] = i
		r.byCode[g.InvitationCode] = i
	}
	for _, code := range snap.RetiredCodes {
		r.retiredCodes[code] = struct{}{}
	}

	return r, nil
}

// persist writes the current snapshot through to the blob store. Called with
// the write lock held. Failures are logged and swallowed: memory stays
// authoritative for the session.
func (r *GuestRepository) persist(ctx context.Context) {
	if r.store == nil {
		return
	}

	retired := make([]string, 0, len(r.retiredCodes))
	for code := range r.retiredCodes {
		retired = append(retired, code)
	}

	snap := snapshot{
		SchemaVersion: snapshotSchemaVersion,
		SavedAt:       time.Now().UTC(),
		Guests:        r.guests,
		RetiredCodes:  retired,
	}

	data, err := json.Marshal(snap)
	if err != nil {
		slog.Warn("Failed to encode guest snapshot", "error", err)
		return
	}

	if err := r.store.Save(ctx, snapshotKey, data); err != nil {
		slog.Warn("Failed to save guest snapshot", "error", err)
	}
}

func (r *GuestRepository) reindex() {
	r.byID = make(map[string]int, len(r.guests))
	r.byCode = make(map[string]int, len(r.guests))
	for i, g := range r.guests {
		r.byID[g.ID] = i
		r.byCode[g.InvitationCode] = i
	}
}

// List implements guest.GuestRepository.
func (r *GuestRepository) List(ctx context.Context) ([]guest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]guest.Guest, len(r.guests))
	copy(out, r.guests)
	return out, nil
}

// Get implements guest.GuestRepository.
func (r *GuestRepository) Get(ctx context.Context, id string) (guest.Guest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return guest.Guest{}, false, nil
	}
	return r.guests[i], true, nil
}

// GetByCode implements guest.GuestRepository.
func (r *GuestRepository) GetByCode(ctx context.Context, code string) (guest.Guest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byCode[code]
	if !ok {
		return guest.Guest{}, false, nil
	}
	return r.guests[i], true, nil
}

// GetByPhone implements guest.GuestRepository. Phones are not indexed; the
// collection is small enough that a scan is fine.
func (r *GuestRepository) GetByPhone(ctx context.Context, phone string) (guest.Guest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.guests {
		if g.Phone == phone {
			return g, true, nil
		}
	}
	return guest.Guest{}, false, nil
}

// Insert implements guest.GuestRepository.
func (r *GuestRepository) Insert(ctx context.Context, g guest.Guest) (guest.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byCode[g.InvitationCode]; taken {
		return guest.Guest{}, guest.ErrDuplicateCode
	}
	if _, retired := r.retiredCodes[g.InvitationCode]; retired {
		return guest.Guest{}, guest.ErrDuplicateCode
	}

	r.guests = append(r.guests, g)
	r.byID[g.ID] = len(r.guests) - 1
	r.byCode[g.InvitationCode] = len(r.guests) - 1

	r.persist(ctx)
	return g, nil
}

// Update implements guest.GuestRepository.
func (r *GuestRepository) Update(ctx context.Context, g guest.Guest) (guest.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[g.ID]
	if !ok {
		return guest.Guest{}, guest.ErrGuestNotFound
	}

	r.guests[i] = g
	r.persist(ctx)
	return g, nil
}

// Delete implements guest.GuestRepository.
func (r *GuestRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return guest.ErrGuestNotFound
	}

	r.retiredCodes[r.guests[i].InvitationCode] = struct{}{}
	r.guests = append(r.guests[:i], r.guests[i+1:]...)
	r.reindex()

	r.persist(ctx)
	return nil
}

// ReplaceAll implements guest.GuestRepository. Retired codes are kept so a
// reset never resurrects a previously issued code.
func (r *GuestRepository) ReplaceAll(ctx context.Context, guests []guest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.guests {
		r.retiredCodes[g.InvitationCode] = struct{}{}
	}

	r.guests = make([]guest.Guest, len(guests))
	copy(r.guests, guests)
	r.reindex()

	r.persist(ctx)
	return nil
}

// CodeTaken implements guest.GuestRepository.
func (r *GuestRepository) CodeTaken(ctx context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byCode[code]; ok {
		return true, nil
	}
	if _, ok := r.retiredCodes[code]; ok {
		return true, nil
	}
	return false, nil
}
