package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/testutil"
)

func TestInvitationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to models.InvitationStatus
		want     bool
	}{
		{models.InvitationPending, models.InvitationAccepted, true},
		{models.InvitationPending, models.InvitationDeclined, true},
		{models.InvitationPending, models.InvitationPending, false},
		{models.InvitationAccepted, models.InvitationDeclined, false},
		{models.InvitationDeclined, models.InvitationAccepted, false},
		{models.InvitationAccepted, models.InvitationPending, false},
		{models.InvitationDeclined, models.InvitationPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestInvitationDefaultsToPending(t *testing.T) {
	db := testutil.NewDB(t)

	inv := models.Invitation{ChallengeID: "c1", InviterID: "u1", InviteeID: "u2"}
	require.NoError(t, db.Create(&inv).Error)

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, models.InvitationPending, inv.Status)
}

func TestInvitationRejectsUnknownStatus(t *testing.T) {
	db := testutil.NewDB(t)

	inv := models.Invitation{ChallengeID: "c1", InviterID: "u1", InviteeID: "u2", Status: "cancelled"}
	err := db.Create(&inv).Error

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestInvitationTripleIsUnique(t *testing.T) {
	db := testutil.NewDB(t)

	first := models.Invitation{ChallengeID: "c1", InviterID: "u1", InviteeID: "u2"}
	require.NoError(t, db.Create(&first).Error)

	dup := models.Invitation{ChallengeID: "c1", InviterID: "u1", InviteeID: "u2"}
	assert.Error(t, db.Create(&dup).Error)

	other := models.Invitation{ChallengeID: "c1", InviterID: "u3", InviteeID: "u2"}
	assert.NoError(t, db.Create(&other).Error)
}
