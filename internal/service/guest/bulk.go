package guest

import (
	"context"
	"log/slog"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
)

// BulkInvite implements guest.GuestService. Requests are processed
// independently; one rejected record never aborts the rest of the batch.
func (s *GuestServiceImpl) BulkInvite(ctx context.Context, reqs []guest.CreateGuestRequest, opts guest.BulkInviteOptions) (guest.BulkInviteResult, error) {
	result := guest.BulkInviteResult{
		Success: []guest.Guest{},
		Failed:  []guest.BulkInviteFailure{},
		Total:   len(reqs),
	}

	for i, req := range reqs {
		created, err := s.createGuest(ctx, req, opts.SendImmediately)
		if err != nil {
			result.Failed = append(result.Failed, guest.BulkInviteFailure{
				Index:  i,
				Name:   req.Name,
				Phone:  req.Phone,
				Reason: err.Error(),
			})
			continue
		}
		result.Success = append(result.Success, created)
	}

	result.SuccessCount = len(result.Success)
	result.FailedCount = len(result.Failed)

	slog.Info("Processed bulk invite batch",
		"total", result.Total,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"send_immediately", opts.SendImmediately,
	)

	return result, nil
}
