package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgram/backend/internal/models"
)

func TestToggleFollowEndpoint(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "bob", false)
	token := env.login(t, "alice")

	w := env.request(t, http.MethodPost, "/api/social/follow", token, FollowToggleInput{
		FollowerID:  "alice",
		FollowingID: "bob",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[FollowStatusResponse](t, w)
	require.NotNil(t, resp.Status)
	assert.Equal(t, models.StatusAccepted, *resp.Status)

	// Second call unfollows and reports no relationship.
	w = env.request(t, http.MethodPost, "/api/social/follow", token, FollowToggleInput{
		FollowerID:  "alice",
		FollowingID: "bob",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody[FollowStatusResponse](t, w)
	assert.Nil(t, resp.Status)
}

func TestToggleFollowEndpointPrivateTarget(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "bob", true)
	token := env.login(t, "alice")

	w := env.request(t, http.MethodPost, "/api/social/follow", token, FollowToggleInput{
		FollowerID:  "alice",
		FollowingID: "bob",
		IsPrivate:   true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[FollowStatusResponse](t, w)
	require.NotNil(t, resp.Status)
	assert.Equal(t, models.StatusPending, *resp.Status)
}

func TestToggleFollowEndpointValidation(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "bob", false)
	token := env.login(t, "alice")

	t.Run("missing fields", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/follow", token, map[string]string{
			"followerId": "alice",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no token", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/follow", "", FollowToggleInput{
			FollowerID:  "alice",
			FollowingID: "bob",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("acting for another user", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/follow", token, FollowToggleInput{
			FollowerID:  "bob",
			FollowingID: "alice",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("self follow", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/follow", token, FollowToggleInput{
			FollowerID:  "alice",
			FollowingID: "alice",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestResolveRequestEndpoint(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "bob", true)
	aliceToken := env.login(t, "alice")
	bobToken := env.login(t, "bob")

	w := env.request(t, http.MethodPost, "/api/social/follow", aliceToken, FollowToggleInput{
		FollowerID:  "alice",
		FollowingID: "bob",
		IsPrivate:   true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("only the target can resolve", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/request", aliceToken, RequestResolveInput{
			Action:        "accept",
			RequesterID:   "alice",
			CurrentUserID: "bob",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown action", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/request", bobToken, RequestResolveInput{
			Action:        "block",
			RequesterID:   "alice",
			CurrentUserID: "bob",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("accept", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/request", bobToken, RequestResolveInput{
			Action:        "accept",
			RequesterID:   "alice",
			CurrentUserID: "bob",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var follow models.Follow
		require.NoError(t, env.db.
			Where("follower_id = ? AND following_id = ?", "alice", "bob").
			First(&follow).Error)
		assert.Equal(t, models.StatusAccepted, follow.Status)
	})

	t.Run("no pending request left", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/request", bobToken, RequestResolveInput{
			Action:        "reject",
			RequesterID:   "alice",
			CurrentUserID: "bob",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetFollowStatusEndpoint(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "bob", false)
	token := env.login(t, "alice")

	t.Run("missing targetId", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/social/status", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no relationship", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/social/status?targetId=bob", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[FollowStatusResponse](t, w)
		assert.Nil(t, resp.Status)
	})

	t.Run("after follow", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/social/follow", token, FollowToggleInput{
			FollowerID:  "alice",
			FollowingID: "bob",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.request(t, http.MethodGet, "/api/social/status?targetId=bob", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[FollowStatusResponse](t, w)
		require.NotNil(t, resp.Status)
		assert.Equal(t, models.StatusAccepted, *resp.Status)
	})
}
