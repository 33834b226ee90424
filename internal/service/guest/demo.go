package guest

import (
	"context"
	"log/slog"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
)

// demoRequests is the sample guest list seeded into demo events.
func demoRequests() []guest.CreateGuestRequest {
	return []guest.CreateGuestRequest{
		{Name: "María González", Phone: "555-0101", Email: "maria@example.com", InvitationType: guest.TypeWhatsApp},
		{Name: "Carlos Hernández", Phone: "555-0102", InvitationType: guest.TypeWhatsApp},
		{Name: "Lucía Ramírez", Phone: "555-0103", Email: "lucia@example.com", InvitationType: guest.TypeEmail},
		{Name: "Javier Torres", Phone: "555-0104", InvitationType: guest.TypeManual, Notes: "Primo de la novia"},
		{Name: "Sofía Martínez", Phone: "555-0105", Email: "sofia@example.com", InvitationType: guest.TypeWhatsApp},
		{Name: "Diego Flores", Phone: "555-0106", InvitationType: guest.TypeManual},
	}
}

// LoadDemoData implements guest.GuestService. The demo catalog replaces
// whatever is on the list, so loading it twice never duplicates guests. The
// seed walks the normal operations so every invariant holds: some guests stay
// pending, some are invited, and a couple already responded.
func (s *GuestServiceImpl) LoadDemoData(ctx context.Context) error {
	if err := s.repo.ReplaceAll(ctx, []guest.Guest{}); err != nil {
		return err
	}

	reqs := demoRequests()

	result, err := s.BulkInvite(ctx, reqs, guest.BulkInviteOptions{})
	if err != nil {
		return err
	}

	// Invite the first four, then record a yes and a no.
	for i, g := range result.Success {
		if i >= 4 {
			break
		}
		if _, err := s.SendInvitation(ctx, g.ID); err != nil {
			return err
		}
	}
	if len(result.Success) >= 2 {
		if _, err := s.ConfirmAttendance(ctx, guest.ConfirmAttendanceRequest{
			InvitationCode: result.Success[0].InvitationCode,
			Name:           result.Success[0].Name,
			Response:       "yes",
			Companions:     "Pedro González, Ana González",
		}); err != nil {
			return err
		}
		if _, err := s.ConfirmAttendance(ctx, guest.ConfirmAttendanceRequest{
			InvitationCode: result.Success[1].InvitationCode,
			Name:           result.Success[1].Name,
			Response:       "no",
		}); err != nil {
			return err
		}
	}

	slog.Info("Loaded demo data", "guests", result.SuccessCount)
	return nil
}

// ClearAllData implements guest.GuestService. Codes of removed guests stay
// retired.
func (s *GuestServiceImpl) ClearAllData(ctx context.Context) error {
	if err := s.repo.ReplaceAll(ctx, []guest.Guest{}); err != nil {
		return err
	}

	slog.Info("Cleared guest list")
	return nil
}

// ResetToInitialState implements guest.GuestService: an empty list reseeded
// with the demo catalog.
func (s *GuestServiceImpl) ResetToInitialState(ctx context.Context) error {
	if err := s.ClearAllData(ctx); err != nil {
		return err
	}
	return s.LoadDemoData(ctx)
}
