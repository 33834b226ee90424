package guest

import (
	"time"

	"github.com/invitia/guestlist-backend-go/internal/pkg/validator"
)

// CreateGuestRequest carries the data needed to add a guest to the list.
type CreateGuestRequest struct {
	Name            string         `json:"name"`
	Phone           string         `json:"phone"`
	Email           string         `json:"email,omitempty"`
	InvitationType  InvitationType `json:"invitation_type,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	SendImmediately bool           `json:"send_immediately,omitempty"`
}

func (r *CreateGuestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		})
	}

	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if r.InvitationType != "" && !r.InvitationType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "invitation_type",
			Message: "invitation_type must be one of: whatsapp, email, manual",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateGuestRequest is a partial merge; only non-nil fields are applied.
// ID, status and invitation code cannot be changed through this path.
type UpdateGuestRequest struct {
	Name           *string         `json:"name,omitempty"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	InvitationType *InvitationType `json:"invitation_type,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	Companions     *[]string       `json:"companions,omitempty"`
}

func (r *UpdateGuestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}

	if r.Phone != nil && validator.IsEmpty(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone cannot be empty",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if r.InvitationType != nil && !r.InvitationType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "invitation_type",
			Message: "invitation_type must be one of: whatsapp, email, manual",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// StatusExtra carries optional data applied alongside a status change.
type StatusExtra struct {
	Companions []string `json:"companions,omitempty"`
}

// ConfirmAttendanceRequest is the payload of the public confirmation form.
// Companions come in as a single free-text field and are split server side.
type ConfirmAttendanceRequest struct {
	InvitationCode string `json:"invitation_code"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	Response       string `json:"response"` // "yes" or "no"
	Companions     string `json:"companions,omitempty"`
}

func (r *ConfirmAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.InvitationCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "invitation_code",
			Message: "invitation_code is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsInSlice(r.Response, []string{"yes", "no"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "response",
			Message: "response must be \"yes\" or \"no\"",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Sort orders accepted by GuestFilters.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// GuestFilters narrows and orders the guest list. All set filters are
// combined with AND. Status and InvitationType pass everything through when
// empty or "all". Search matches name, phone or email case-insensitively.
type GuestFilters struct {
	Status         string     `json:"status,omitempty"`
	InvitationType string     `json:"invitation_type,omitempty"`
	Search         string     `json:"search,omitempty"`
	DateFrom       *time.Time `json:"date_from,omitempty"`
	DateTo         *time.Time `json:"date_to,omitempty"`
	HasCompanions  *bool      `json:"has_companions,omitempty"`
	SortBy         string     `json:"sort_by,omitempty"`
	SortOrder      string     `json:"sort_order,omitempty"`
}

// Pagination selects a page of results. Page is 1-based.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PagedGuests is one page of a filtered, sorted guest list.
type PagedGuests struct {
	Items      []Guest `json:"items"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
}

// GuestStats are the aggregate figures derived from the full guest list.
//
// The status taxonomy conflates "not yet invited" with the pending status, so
// the display buckets map as follows: NotInvited counts guests whose status is
// pending (never sent anything), Pending counts guests whose status is invited
// (sent, awaiting a response). With that mapping
// Confirmed + Declined + Pending + NotInvited == Total always holds.
type GuestStats struct {
	Total                int     `json:"total"`
	Confirmed            int     `json:"confirmed"`
	Declined             int     `json:"declined"`
	Pending              int     `json:"pending"`
	NotInvited           int     `json:"not_invited"`
	TotalConfirmedPeople int     `json:"total_confirmed_people"`
	ResponseRate         float64 `json:"response_rate"`
	ConfirmationRate     float64 `json:"confirmation_rate"`
}

// BulkInviteOptions controls how a batch of creation requests is ingested.
type BulkInviteOptions struct {
	SendImmediately bool `json:"send_immediately"`
}

// BulkInviteFailure records one rejected request of a batch.
type BulkInviteFailure struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Reason string `json:"reason"`
}

// BulkInviteResult aggregates the outcome of a batch ingest.
// SuccessCount + FailedCount == Total.
type BulkInviteResult struct {
	Success      []Guest             `json:"success"`
	Failed       []BulkInviteFailure `json:"failed"`
	Total        int                 `json:"total"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
}

// Export formats understood by the serialization adapter.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ExportOptions selects what to serialize and how. Fields must come from the
// exportable field set; an empty Fields exports the default set.
type ExportOptions struct {
	Format       string       `json:"format"`
	Filters      GuestFilters `json:"filters,omitempty"`
	Fields       []string     `json:"fields,omitempty"`
	IncludeStats bool         `json:"include_stats,omitempty"`
}
