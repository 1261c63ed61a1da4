package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgram/backend/internal/models"
)

func TestListNotifications(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "bob", true)
	aliceToken := env.login(t, "alice")
	bobToken := env.login(t, "bob")

	// A pending follow against a private account notifies the target.
	w := env.request(t, http.MethodPost, "/api/social/follow", aliceToken, FollowToggleInput{
		FollowerID:  "alice",
		FollowingID: "bob",
		IsPrivate:   true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/notifications", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeBody[[]NotificationResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationFollowRequest, list[0].Type)
	assert.False(t, list[0].IsRead)
	assert.Equal(t, "alice", list[0].Actor.Username)

	// The requester sees nothing yet.
	w = env.request(t, http.MethodGet, "/api/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]NotificationResponse](t, w))
}

func TestMarkAllNotificationsRead(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "bob", false)
	aliceToken := env.login(t, "alice")
	bobToken := env.login(t, "bob")

	w := env.request(t, http.MethodPost, "/api/social/follow", aliceToken, FollowToggleInput{
		FollowerID:  "alice",
		FollowingID: "bob",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/notifications/read", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/notifications", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeBody[[]NotificationResponse](t, w)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
}
