package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/testutil"
)

func TestNotificationVariants(t *testing.T) {
	inv := models.NewInvitationNotification("u1", "inv1", "Alice invited you")
	require.NoError(t, inv.Validate())
	assert.Equal(t, models.NotificationInvitation, inv.Type)
	require.NotNil(t, inv.InvitationID)
	assert.Equal(t, "inv1", *inv.InvitationID)

	sys := models.NewSystemNotification("u1", "Welcome")
	require.NoError(t, sys.Validate())
	assert.Equal(t, models.NotificationSystemMessage, sys.Type)
	assert.Nil(t, sys.InvitationID)
}

func TestNotificationValidate(t *testing.T) {
	empty := ""
	ref := "inv1"
	cases := []struct {
		name  string
		n     models.Notification
		field string
	}{
		{"invitation without reference", models.Notification{UserID: "u1", Content: "x", Type: models.NotificationInvitation}, "invitationId"},
		{"invitation with empty reference", models.Notification{UserID: "u1", Content: "x", Type: models.NotificationInvitation, InvitationID: &empty}, "invitationId"},
		{"system message with reference", models.Notification{UserID: "u1", Content: "x", Type: models.NotificationSystemMessage, InvitationID: &ref}, "invitationId"},
		{"missing content", models.Notification{UserID: "u1", Type: models.NotificationSystemMessage}, "content"},
		{"missing user", models.Notification{Content: "x", Type: models.NotificationSystemMessage}, "userId"},
		{"unknown type", models.Notification{UserID: "u1", Content: "x", Type: "promo"}, "type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.n.Validate()
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNotificationHookBlocksInvalidInsert(t *testing.T) {
	db := testutil.NewDB(t)

	bad := models.Notification{UserID: "u1", Content: "x", Type: models.NotificationInvitation}
	err := db.Create(&bad).Error
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)

	// type trống -> mặc định system_message
	ok := models.Notification{UserID: "u1", Content: "hello"}
	require.NoError(t, db.Create(&ok).Error)
	assert.Equal(t, models.NotificationSystemMessage, ok.Type)
	assert.False(t, ok.IsRead)
}
