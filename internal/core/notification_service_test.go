package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("token-1", models.NotificationPayload{
		Title:    "New Gym",
		Body:     "Iron Temple just joined",
		ImageURL: "https://example.com/banner.png",
		Data:     map[string]string{"gymId": "g1"},
	})

	assert.Equal(t, "token-1", msg.Token)
	assert.Equal(t, "New Gym", msg.Notification.Title)
	assert.Equal(t, "Iron Temple just joined", msg.Notification.Body)
	assert.Equal(t, "https://example.com/banner.png", msg.Notification.ImageURL)

	// Caller data is carried through with the client routing keys added.
	assert.Equal(t, "g1", msg.Data["gymId"])
	assert.Equal(t, "FLUTTER_NOTIFICATION_CLICK", msg.Data["click_action"])
	assert.Equal(t, "default", msg.Data["sound"])

	require.NotNil(t, msg.Android)
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, androidChannelID, msg.Android.Notification.ChannelID)

	require.NotNil(t, msg.APNS)
	assert.Equal(t, "default", msg.APNS.Payload.Aps.Sound)
	require.NotNil(t, msg.APNS.Payload.Aps.Badge)
	assert.Equal(t, 1, *msg.APNS.Payload.Aps.Badge)
}

func TestBuildMessageDoesNotMutateCallerData(t *testing.T) {
	data := map[string]string{"gymId": "g1"}
	buildMessage("token-1", models.NotificationPayload{Title: "t", Body: "b", Data: data})
	assert.Equal(t, map[string]string{"gymId": "g1"}, data)
}

func TestRecipients(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewNotificationService(nil, userRepo, noopAudit{}, zap.NewNop())

	userRepo.On("List", mock.Anything).Return([]*models.User{
		{UserID: "u1", FCMToken: "tok-1"},
		{UserID: "u2"},
		{UserID: "u3", FCMToken: "  "},
		{UserID: "u4", FCMToken: "tok-4"},
	}, nil)

	recipients, err := svc.Recipients(context.Background())
	require.NoError(t, err)
	require.Len(t, recipients, 2)
	assert.Equal(t, "u1", recipients[0].UserID)
	assert.Equal(t, "u4", recipients[1].UserID)
}
