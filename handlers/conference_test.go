package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-central/middleware"
	"conference-central/model"
	"conference-central/tasks"
)

func TestCreateConference(t *testing.T) {
	e := newEnv()
	owner := tokenFor(t, "u1")

	e.run(t, []Test{
		{description: "anonymous", method: "POST", route: "/conference", body: map[string]interface{}{"name": "PyCon"}, expectedCode: 401},
		{description: "missing name", method: "POST", route: "/conference", token: owner, body: map[string]interface{}{"city": "London"}, expectedCode: 400},
		{description: "invalid date", method: "POST", route: "/conference", token: owner, body: map[string]interface{}{"name": "PyCon", "startDate": "June"}, expectedCode: 400},
		{description: "negative seats", method: "POST", route: "/conference", token: owner, body: map[string]interface{}{"name": "PyCon", "maxAttendees": -1}, expectedCode: 400},
	})

	created := e.createConference(t, owner, map[string]interface{}{
		"name": "PyCon", "maxAttendees": 100, "startDate": "2026-06-01", "endDate": "2026-06-03",
	})
	require.NotNil(t, created.SeatsAvailable)
	assert.Equal(t, 100, *created.SeatsAvailable)
	assert.Equal(t, 6, *created.Month)
	assert.Equal(t, "Default City", created.City)
	assert.Equal(t, []string{"Default", "Topic"}, created.Topics)
	assert.Equal(t, "u1", created.OrganizerDisplayName)
	assert.NotEmpty(t, created.WebsafeKey)

	defaults := e.createConference(t, owner, map[string]interface{}{"name": "Unbounded"})
	assert.Equal(t, 0, *defaults.SeatsAvailable)
	assert.Equal(t, 0, *defaults.MaxAttendees)

	emails := e.queue.ofKind(tasks.KindSendConfirmationEmail)
	require.Len(t, emails, 2)
	assert.Equal(t, "u1@example.com", emails[0].Params[tasks.ParamEmail])
	assert.Contains(t, emails[0].Params[tasks.ParamConferenceInfo], "PyCon")

	code, body := e.do(t, "GET", "/conference/"+created.WebsafeKey, "", nil)
	require.Equal(t, 200, code)
	var fetched model.ConferenceForm
	decode(t, body, &fetched)
	assert.Equal(t, created, fetched)
}

func TestGetConferenceErrors(t *testing.T) {
	e := newEnv()
	missing := model.NewConferenceKey("u1", "nope").Encode()
	sessionKey := model.NewSessionKey("u1", "c1", "s1").Encode()

	e.run(t, []Test{
		{description: "garbage key", method: "GET", route: "/conference/not-a-key", expectedCode: 400},
		{description: "wrong kind", method: "GET", route: "/conference/" + sessionKey, expectedCode: 400},
		{description: "missing conference", method: "GET", route: "/conference/" + missing, expectedCode: 404},
	})
}

func TestUpdateConference(t *testing.T) {
	e := newEnv()
	owner := tokenFor(t, "u1")
	created := e.createConference(t, owner, map[string]interface{}{
		"name": "PyCon", "city": "London", "maxAttendees": 10, "startDate": "2026-06-01",
	})
	route := "/conference/" + created.WebsafeKey

	e.run(t, []Test{
		{description: "anonymous", method: "PUT", route: route, body: map[string]interface{}{"city": "Paris"}, expectedCode: 401},
		{description: "not the owner", method: "PUT", route: route, token: tokenFor(t, "u2"), body: map[string]interface{}{"city": "Paris"}, expectedCode: 403},
		{description: "missing conference", method: "PUT", route: "/conference/" + model.NewConferenceKey("u1", "x").Encode(), token: owner, body: map[string]interface{}{"city": "Paris"}, expectedCode: 404},
	})

	code, body := e.do(t, "PUT", route, owner, map[string]interface{}{"city": "Paris", "startDate": "2026-09-10"})
	require.Equal(t, 200, code, string(body))
	var updated model.ConferenceForm
	decode(t, body, &updated)
	assert.Equal(t, "Paris", updated.City)
	assert.Equal(t, "PyCon", updated.Name)
	assert.Equal(t, 9, *updated.Month)
	assert.Equal(t, 10, *updated.SeatsAvailable)

	for _, user := range []string{"u2", "u3"} {
		code, _ := e.do(t, "POST", route, tokenFor(t, user), nil)
		require.Equal(t, 200, code)
	}

	code, body = e.do(t, "PUT", route, owner, map[string]interface{}{"maxAttendees": 50})
	require.Equal(t, 200, code, string(body))
	decode(t, body, &updated)
	assert.Equal(t, 50, *updated.MaxAttendees)
	assert.Equal(t, 48, *updated.SeatsAvailable)

	code, _ = e.do(t, "PUT", route, owner, map[string]interface{}{"maxAttendees": 1})
	assert.Equal(t, 400, code)
	conf, err := e.store.GetConference(context.Background(), keyId(t, created.WebsafeKey))
	require.NoError(t, err)
	assert.Equal(t, 50, conf.MaxAttendees)
}

func TestConferenceLists(t *testing.T) {
	e := newEnv()
	alice, bob := tokenFor(t, "alice"), tokenFor(t, "bob")
	e.createConference(t, alice, map[string]interface{}{"name": "PyCon", "city": "London", "topics": []string{"Python", "Web"}, "startDate": "2026-06-01", "maxAttendees": 100})
	gopher := e.createConference(t, alice, map[string]interface{}{"name": "GopherCon", "city": "Denver", "topics": []string{"Go"}, "startDate": "2026-07-01", "maxAttendees": 50})
	e.createConference(t, bob, map[string]interface{}{"name": "DevFest", "city": "London", "topics": []string{"Web"}, "startDate": "2026-11-01", "maxAttendees": 10})

	names := func(data []byte) []string {
		var forms model.ConferenceForms
		decode(t, data, &forms)
		out := []string{}
		for _, f := range forms.Items {
			out = append(out, f.Name)
		}
		return out
	}

	code, body := e.do(t, "POST", "/getConferencesCreated", alice, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, []string{"GopherCon", "PyCon"}, names(body))

	code, _ = e.do(t, "POST", "/getConferencesCreated", "", nil)
	assert.Equal(t, 401, code)

	code, body = e.do(t, "POST", "/queryConferences", "", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, []string{"DevFest", "GopherCon", "PyCon"}, names(body))

	code, body = e.do(t, "POST", "/queryConferences", "", map[string]interface{}{"filters": []map[string]string{
		{"field": "CITY", "operator": "EQ", "value": "London"},
		{"field": "MONTH", "operator": "GT", "value": "6"},
	}})
	require.Equal(t, 200, code)
	assert.Equal(t, []string{"DevFest"}, names(body))

	code, body = e.do(t, "POST", "/queryConferences", "", map[string]interface{}{"filters": []map[string]string{
		{"field": "TOPIC", "operator": "EQ", "value": "Web"},
	}})
	require.Equal(t, 200, code)
	assert.Equal(t, []string{"DevFest", "PyCon"}, names(body))

	var forms model.ConferenceForms
	code, body = e.do(t, "POST", "/queryConferences", "", map[string]interface{}{"filters": []map[string]string{
		{"field": "MAX_ATTENDEES", "operator": "LTEQ", "value": "50"},
	}})
	require.Equal(t, 200, code)
	decode(t, body, &forms)
	require.Len(t, forms.Items, 2)
	assert.Equal(t, "DevFest", forms.Items[0].Name)
	assert.Equal(t, "bob", forms.Items[0].OrganizerDisplayName)
	assert.Equal(t, "alice", forms.Items[1].OrganizerDisplayName)

	code, body = e.do(t, "POST", "/queryConferences", "", map[string]interface{}{"filters": []map[string]string{
		{"field": "MONTH", "operator": "GT", "value": "6"},
		{"field": "MAX_ATTENDEES", "operator": "LT", "value": "60"},
	}})
	assert.Equal(t, 400, code)
	assert.Equal(t, "Inequality filter is allowed on only one field.", errorMessage(t, body))

	code, _ = e.do(t, "POST", "/queryConferences", "", map[string]interface{}{"filters": []map[string]string{
		{"field": "ORGANIZER", "operator": "EQ", "value": "alice"},
	}})
	assert.Equal(t, 400, code)

	code, _ = e.do(t, "POST", "/conference/"+gopher.WebsafeKey, bob, nil)
	require.Equal(t, 200, code)
	code, body = e.do(t, "GET", "/conferences/attending", bob, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, []string{"GopherCon"}, names(body))
}

func TestCreateConferenceWithoutEmail(t *testing.T) {
	e := newEnv()
	token, err := middleware.IssueToken(testSecret, model.Identity{UserId: "u1", Nickname: "u1"}, time.Hour)
	require.NoError(t, err)

	e.createConference(t, token, map[string]interface{}{"name": "PyCon"})
	assert.Empty(t, e.queue.ofKind(tasks.KindSendConfirmationEmail))
}
