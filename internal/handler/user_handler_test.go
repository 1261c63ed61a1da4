package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgram/backend/internal/models"
)

func TestGetMe(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", true)
	token := env.login(t, "alice")

	t.Run("without token", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("with token", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody[UserResponse](t, w)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.True(t, resp.IsPrivate)
	})
}

func TestUpdateMe(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	token := env.login(t, "alice")

	t.Run("no fields", func(t *testing.T) {
		w := env.request(t, http.MethodPut, "/api/users/me", token, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		bio := "hello there"
		private := true
		w := env.request(t, http.MethodPut, "/api/users/me", token, UpdateProfileInput{
			Bio:       &bio,
			IsPrivate: &private,
		})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody[UserResponse](t, w)
		assert.Equal(t, "hello there", resp.Bio)
		assert.True(t, resp.IsPrivate)
		// Untouched fields keep their values.
		assert.Equal(t, "alice", resp.Username)
	})
}

func TestGetByUsername(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "bob", false)
	env.createUser(t, "carol", false)
	token := env.login(t, "alice")

	// bob has one accepted follower and one pending request.
	require.NoError(t, env.db.Create(&models.Follow{
		FollowerID: "alice", FollowingID: "bob", Status: models.StatusAccepted,
	}).Error)
	require.NoError(t, env.db.Create(&models.Follow{
		FollowerID: "carol", FollowingID: "bob", Status: models.StatusPending,
	}).Error)

	t.Run("unknown user", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/nobody", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/bob", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody[PublicUserResponse](t, w)
		assert.EqualValues(t, 1, resp.FollowersCount)
		assert.False(t, resp.IsOwnProfile)
		assert.Nil(t, resp.FollowStatus)
	})

	t.Run("authenticated viewer sees follow status", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/bob", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody[PublicUserResponse](t, w)
		require.NotNil(t, resp.FollowStatus)
		assert.Equal(t, models.StatusAccepted, *resp.FollowStatus)
	})

	t.Run("own profile", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/alice", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody[PublicUserResponse](t, w)
		assert.True(t, resp.IsOwnProfile)
		assert.Nil(t, resp.FollowStatus)
	})
}

func TestSearchUsers(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", false)
	env.createUser(t, "alicia", false)
	env.createUser(t, "bob", false)

	t.Run("missing query", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/search", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/search?q=ALI", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody[PaginatedResponse[PublicUserResponse]](t, w)
		assert.EqualValues(t, 2, resp.Meta.TotalItems)
		assert.Len(t, resp.Data, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/users/search?q=ali&page=2&limit=1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody[PaginatedResponse[PublicUserResponse]](t, w)
		assert.EqualValues(t, 2, resp.Meta.TotalItems)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, 2, resp.Meta.CurrentPage)
	})
}
