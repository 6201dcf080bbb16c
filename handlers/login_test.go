package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"conference-central/model"
)

func TestLogin(t *testing.T) {
	e := newEnv()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.MinCost)
	require.NoError(t, err)
	e.store.PutUserData(model.UserData{Id: "u1", Login: "fake_admin", HashedPassword: string(hash), Email: "admin@example.com"})

	e.run(t, []Test{
		{description: "login anonymous", method: "POST", route: "/login", expectedCode: 400},
		{description: "unknown login", method: "POST", route: "/login", body: map[string]string{"login": "nobody", "password": "admin"}, expectedCode: 401},
		{description: "wrong password", method: "POST", route: "/login", body: map[string]string{"login": "fake_admin", "password": "nope"}, expectedCode: 401},
	})

	code, body := e.do(t, "POST", "/login", "", map[string]string{"login": "fake_admin", "password": "admin"})
	require.Equal(t, 200, code)
	var res struct {
		Status string `json:"status"`
		Data   string `json:"data"`
	}
	decode(t, body, &res)
	assert.Equal(t, "success", res.Status)

	code, body = e.do(t, "GET", "/profile", res.Data, nil)
	require.Equal(t, 200, code)
	var profile model.ProfileForm
	decode(t, body, &profile)
	assert.Equal(t, "admin@example.com", profile.MainEmail)
	assert.Equal(t, "fake_admin", profile.DisplayName)
}

func TestHealth(t *testing.T) {
	e := newEnv()
	e.run(t, []Test{
		{description: "health", method: "GET", route: "/health", expectedCode: 200},
		{description: "invalid token", method: "GET", route: "/health", token: "garbage", expectedCode: 401},
	})
}
