package guest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
)

// GuestServiceImpl orchestrates the guest collection: it composes the code
// generator, query engine, stats aggregator and bulk processor on top of the
// repository. All mutations funnel through here.
type GuestServiceImpl struct {
	repo guest.GuestRepository
}

func NewGuestService(repo guest.GuestRepository) guest.GuestService {
	return &GuestServiceImpl{repo: repo}
}

// createGuest is the shared creation path for AddGuest and BulkInvite.
func (s *GuestServiceImpl) createGuest(ctx context.Context, req guest.CreateGuestRequest, sendImmediately bool) (guest.Guest, error) {
	if err := req.Validate(); err != nil {
		return guest.Guest{}, err
	}

	code, err := generateCode(ctx, s.repo.CodeTaken)
	if err != nil {
		return guest.Guest{}, err
	}

	g := guest.NewGuest(uuid.New().String(), req, code)

	if sendImmediately || req.SendImmediately {
		now := time.Now()
		g.Status = guest.StatusInvited
		g.DateInvited = now
		g.LastContactDate = now
		g.ContactAttempts = 1
	}

	return s.repo.Insert(ctx, g)
}

// AddGuest implements guest.GuestService.
func (s *GuestServiceImpl) AddGuest(ctx context.Context, req guest.CreateGuestRequest) (guest.Guest, error) {
	created, err := s.createGuest(ctx, req, false)
	if err != nil {
		return guest.Guest{}, err
	}

	slog.Info("Added guest", "guest_id", created.ID, "status", created.Status)
	return created, nil
}

// UpdateGuest implements guest.GuestService.
func (s *GuestServiceImpl) UpdateGuest(ctx context.Context, id string, req guest.UpdateGuestRequest) (guest.Guest, error) {
	if err := req.Validate(); err != nil {
		return guest.Guest{}, err
	}

	g, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return guest.Guest{}, err
	}
	if !ok {
		return guest.Guest{}, guest.ErrGuestNotFound
	}

	if req.Name != nil {
		g.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		g.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		g.Email = strings.TrimSpace(*req.Email)
	}
	if req.InvitationType != nil {
		g.InvitationType = *req.InvitationType
	}
	if req.Notes != nil {
		g.Notes = *req.Notes
	}
	if req.Companions != nil {
		g.Companions = *req.Companions
	}

	return s.repo.Update(ctx, g)
}

// UpdateGuestStatus implements guest.GuestService.
func (s *GuestServiceImpl) UpdateGuestStatus(ctx context.Context, id string, status guest.Status, extra *guest.StatusExtra) (guest.Guest, error) {
	if !status.Valid() {
		return guest.Guest{}, guest.ErrInvalidStatus
	}

	g, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return guest.Guest{}, err
	}
	if !ok {
		return guest.Guest{}, guest.ErrGuestNotFound
	}

	if !guest.CanTransition(g.Status, status) {
		return guest.Guest{}, fmt.Errorf("%w: %s to %s", guest.ErrInvalidTransition, g.Status, status)
	}

	now := time.Now()
	if status == guest.StatusInvited && g.DateInvited.IsZero() {
		g.DateInvited = now
	}
	if status.Responded() && g.DateResponded.IsZero() {
		g.DateResponded = now
	}
	g.Status = status

	if extra != nil && extra.Companions != nil && status == guest.StatusConfirmed {
		g.Companions = extra.Companions
	}

	return s.repo.Update(ctx, g)
}

// DeleteGuest implements guest.GuestService.
func (s *GuestServiceImpl) DeleteGuest(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("Deleted guest", "guest_id", id)
	return nil
}

// SendInvitation implements guest.GuestService.
func (s *GuestServiceImpl) SendInvitation(ctx context.Context, id string) (guest.Guest, error) {
	g, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return guest.Guest{}, err
	}
	if !ok {
		return guest.Guest{}, guest.ErrGuestNotFound
	}

	if g.Status != guest.StatusPending {
		return guest.Guest{}, fmt.Errorf("%w: send requires a pending guest, got %s", guest.ErrInvalidTransition, g.Status)
	}

	now := time.Now()
	g.Status = guest.StatusInvited
	g.DateInvited = now
	g.LastContactDate = now
	g.ContactAttempts++

	return s.repo.Update(ctx, g)
}

// ResendInvitation implements guest.GuestService. Resend only refreshes the
// contact bookkeeping; a recorded response survives.
func (s *GuestServiceImpl) ResendInvitation(ctx context.Context, id string) (guest.Guest, error) {
	g, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return guest.Guest{}, err
	}
	if !ok {
		return guest.Guest{}, guest.ErrGuestNotFound
	}

	if g.Status == guest.StatusPending {
		return guest.Guest{}, fmt.Errorf("%w: resend requires a previously sent invitation", guest.ErrInvalidTransition)
	}

	g.LastContactDate = time.Now()
	g.ContactAttempts++

	return s.repo.Update(ctx, g)
}

// parseCompanions splits the free-text companions field of the confirmation
// form into individual names.
func parseCompanions(raw string) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	}) {
		name := strings.TrimSpace(part)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ConfirmAttendance implements guest.GuestService.
func (s *GuestServiceImpl) ConfirmAttendance(ctx context.Context, req guest.ConfirmAttendanceRequest) (guest.Guest, error) {
	if err := req.Validate(); err != nil {
		return guest.Guest{}, err
	}

	g, ok, err := s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(req.InvitationCode)))
	if err != nil {
		return guest.Guest{}, err
	}
	if !ok {
		return guest.Guest{}, guest.ErrCodeNotFound
	}

	if !strings.EqualFold(strings.TrimSpace(req.Name), g.Name) {
		return guest.Guest{}, guest.ErrNameMismatch
	}

	now := time.Now()

	// A pending guest who reaches the form got the code out of band, so the
	// invitation evidently arrived; record it as invited before the response.
	if g.Status == guest.StatusPending {
		g.Status = guest.StatusInvited
		g.DateInvited = now
	}

	switch req.Response {
	case "yes":
		g.Status = guest.StatusConfirmed
		g.Companions = parseCompanions(req.Companions)
	case "no":
		g.Status = guest.StatusDeclined
		g.Companions = []string{}
	}
	g.DateResponded = now

	updated, err := s.repo.Update(ctx, g)
	if err != nil {
		return guest.Guest{}, err
	}

	slog.Info("Recorded attendance response", "guest_id", updated.ID, "status", updated.Status, "companions", len(updated.Companions))
	return updated, nil
}

// GetGuest implements guest.GuestService.
func (s *GuestServiceImpl) GetGuest(ctx context.Context, id string) (guest.Guest, bool, error) {
	return s.repo.Get(ctx, id)
}

// GetGuestByCode implements guest.GuestService.
func (s *GuestServiceImpl) GetGuestByCode(ctx context.Context, code string) (guest.Guest, bool, error) {
	return s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// FindGuestByPhone implements guest.GuestService.
func (s *GuestServiceImpl) FindGuestByPhone(ctx context.Context, phone string) (guest.Guest, bool, error) {
	return s.repo.GetByPhone(ctx, strings.TrimSpace(phone))
}

// GetFilteredGuests implements guest.GuestService: filter, then sort, then
// paginate. A nil pagination wraps the whole result as page 1 of 1.
func (s *GuestServiceImpl) GetFilteredGuests(ctx context.Context, filters guest.GuestFilters, page *guest.Pagination) (guest.PagedGuests, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return guest.PagedGuests{}, err
	}

	matched := filterGuests(all, filters)
	sorted, err := sortGuests(matched, filters.SortBy, filters.SortOrder)
	if err != nil {
		return guest.PagedGuests{}, err
	}

	if page == nil {
		return guest.PagedGuests{
			Items:      sorted,
			Total:      len(sorted),
			Page:       1,
			Limit:      len(sorted),
			TotalPages: 1,
		}, nil
	}

	return paginateGuests(sorted, page.Page, page.Limit)
}

// GetStats implements guest.GuestService. Stats are recomputed from the live
// collection on every call.
func (s *GuestServiceImpl) GetStats(ctx context.Context) (guest.GuestStats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return guest.GuestStats{}, err
	}
	return computeStats(all), nil
}

// GetStatsByStatus implements guest.GuestService.
func (s *GuestServiceImpl) GetStatsByStatus(ctx context.Context) (map[guest.Status]int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return statsByStatus(all), nil
}
