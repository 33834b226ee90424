package guest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []Status{StatusPending, StatusInvited, StatusConfirmed, StatusDeclined} {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}
	assert.False(t, Status("accepted").Valid())
	assert.False(t, Status("").Valid())
}

func TestInvitationType_Valid(t *testing.T) {
	t.Parallel()

	for _, it := range []InvitationType{TypeWhatsApp, TypeEmail, TypeManual} {
		assert.True(t, it.Valid(), "expected %q to be valid", it)
	}
	assert.False(t, InvitationType("sms").Valid())
}

func TestNewGuest_Defaults(t *testing.T) {
	t.Parallel()

	g := NewGuest("id-1", CreateGuestRequest{Name: "  Ana  ", Phone: " 555-0001 "}, "CODE1234")

	assert.Equal(t, "id-1", g.ID)
	assert.Equal(t, "Ana", g.Name)
	assert.Equal(t, "555-0001", g.Phone)
	assert.Equal(t, StatusPending, g.Status)
	assert.Equal(t, TypeManual, g.InvitationType)
	assert.Equal(t, "CODE1234", g.InvitationCode)
	assert.NotNil(t, g.Companions)
	assert.Empty(t, g.Companions)
	assert.Zero(t, g.ContactAttempts)
	assert.True(t, g.DateInvited.IsZero())
	assert.True(t, g.DateResponded.IsZero())
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInvited, true},
		{StatusPending, StatusConfirmed, false},
		{StatusPending, StatusDeclined, false},
		{StatusInvited, StatusConfirmed, true},
		{StatusInvited, StatusDeclined, true},
		{StatusInvited, StatusPending, false},
		{StatusConfirmed, StatusDeclined, true},
		{StatusDeclined, StatusConfirmed, true},
		{StatusConfirmed, StatusInvited, false},
		{StatusDeclined, StatusInvited, false},
		// Same-status writes are accepted as no-ops.
		{StatusPending, StatusPending, true},
		{StatusConfirmed, StatusConfirmed, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestCreateGuestRequest_Validate(t *testing.T) {
	t.Parallel()

	ok := CreateGuestRequest{Name: "Ana", Phone: "555-0001"}
	assert.NoError(t, ok.Validate())

	missing := CreateGuestRequest{Phone: "555-0001"}
	assert.Error(t, missing.Validate())

	blankPhone := CreateGuestRequest{Name: "Ana", Phone: "   "}
	assert.Error(t, blankPhone.Validate())

	badEmail := CreateGuestRequest{Name: "Ana", Phone: "555", Email: "not-an-email"}
	assert.Error(t, badEmail.Validate())

	badType := CreateGuestRequest{Name: "Ana", Phone: "555", InvitationType: "sms"}
	assert.Error(t, badType.Validate())
}

func TestConfirmAttendanceRequest_Validate(t *testing.T) {
	t.Parallel()

	ok := ConfirmAttendanceRequest{InvitationCode: "ABCD2345", Name: "Ana", Response: "yes"}
	assert.NoError(t, ok.Validate())

	noCode := ConfirmAttendanceRequest{Name: "Ana", Response: "no"}
	assert.Error(t, noCode.Validate())

	badResponse := ConfirmAttendanceRequest{InvitationCode: "ABCD2345", Name: "Ana", Response: "maybe"}
	assert.Error(t, badResponse.Validate())
}
