package guest

import (
	"strings"
	"time"
)

// Status represents where a guest sits in the invitation lifecycle
type Status string

const (
	StatusPending   Status = "pending"
	StatusInvited   Status = "invited"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
)

// Valid reports whether s is one of the four lifecycle statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInvited, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// Responded reports whether the status carries a guest response.
func (s Status) Responded() bool {
	return s == StatusConfirmed || s == StatusDeclined
}

// InvitationType is the channel an invitation goes out on. It is metadata
// only and has no effect on the guest lifecycle.
type InvitationType string

const (
	TypeWhatsApp InvitationType = "whatsapp"
	TypeEmail    InvitationType = "email"
	TypeManual   InvitationType = "manual"
)

// Valid reports whether t is a known invitation channel.
func (t InvitationType) Valid() bool {
	switch t {
	case TypeWhatsApp, TypeEmail, TypeManual:
		return true
	}
	return false
}

// Guest represents a single invitee on the event guest list.
type Guest struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Phone           string         `json:"phone"`
	Email           string         `json:"email,omitempty"`
	Status          Status         `json:"status"`
	Companions      []string       `json:"companions"`
	DateInvited     time.Time      `json:"date_invited,omitzero"`
	DateResponded   time.Time      `json:"date_responded,omitzero"`
	InvitationCode  string         `json:"invitation_code"`
	InvitationType  InvitationType `json:"invitation_type"`
	Notes           string         `json:"notes,omitempty"`
	ContactAttempts int            `json:"contact_attempts"`
	LastContactDate time.Time      `json:"last_contact_date,omitzero"`
}

// HasCompanions reports whether the guest registered any companions.
func (g *Guest) HasCompanions() bool {
	return len(g.Companions) > 0
}

// NewGuest builds a guest from a creation request with defaults filled in.
// The caller supplies the id and the unique invitation code.
func NewGuest(id string, req CreateGuestRequest, code string) Guest {
	invType := req.InvitationType
	if invType == "" {
		invType = TypeManual
	}

	return Guest{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
		Status:         StatusPending,
		Companions:     []string{},
		InvitationCode: code,
		InvitationType: invType,
		Notes:          req.Notes,
	}
}

// allowedTransitions lists the reachable statuses from each current status.
// A pending guest must pass through invited before responding; confirmed and
// declined guests may still change their answer. Same-status writes are
// accepted as no-ops by the service and are not listed here.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusInvited},
	StatusInvited:   {StatusConfirmed, StatusDeclined},
	StatusConfirmed: {StatusDeclined},
	StatusDeclined:  {StatusConfirmed},
}

// CanTransition reports whether a guest may move from one status to another.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
