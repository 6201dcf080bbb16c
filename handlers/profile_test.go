package handlers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-central/cache"
	"conference-central/model"
)

func TestProfile(t *testing.T) {
	e := newEnv()
	user := tokenFor(t, "u1")

	code, body := e.do(t, "GET", "/profile", user, nil)
	require.Equal(t, 200, code)
	var profile model.ProfileForm
	decode(t, body, &profile)
	assert.Equal(t, "u1", profile.DisplayName)
	assert.Equal(t, "u1@example.com", profile.MainEmail)
	assert.Equal(t, "NOT_SPECIFIED", profile.TeeShirtSize)
	assert.Empty(t, profile.ConferenceKeysToAttend)

	e.run(t, []Test{
		{description: "anonymous get", method: "GET", route: "/profile", expectedCode: 401},
		{description: "anonymous save", method: "POST", route: "/profile", body: map[string]string{"displayName": "Ada"}, expectedCode: 401},
		{description: "invalid size", method: "POST", route: "/profile", token: user, body: map[string]string{"teeShirtSize": "HUGE"}, expectedCode: 400},
	})

	code, body = e.do(t, "POST", "/profile", user, map[string]string{"displayName": "Ada", "teeShirtSize": "M_W"})
	require.Equal(t, 200, code, string(body))
	decode(t, body, &profile)
	assert.Equal(t, "Ada", profile.DisplayName)
	assert.Equal(t, "M_W", profile.TeeShirtSize)

	stored, err := e.store.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.DisplayName)
}

func TestAnnouncement(t *testing.T) {
	e := newEnv()
	read := func() string {
		code, body := e.do(t, "GET", "/conference/announcement/get", "", nil)
		require.Equal(t, 200, code)
		var msg model.StringMessage
		decode(t, body, &msg)
		return msg.Data
	}

	assert.Equal(t, "", read())
	require.NoError(t, e.cache.Set(context.Background(), cache.AnnouncementsKey, "Last chance!"))
	assert.Equal(t, "Last chance!", read())
}
