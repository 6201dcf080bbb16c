package errors

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("no seats")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", NotFound("missing"))))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
	assert.False(t, Is(nil, KindInternal))
	assert.True(t, Is(BadRequest("x"), KindBadRequest))
}

func TestRespond(t *testing.T) {
	tests := []struct {
		description  string
		err          error
		expectedCode int
		expectedData string
	}{
		{"unauthorized", Unauthorized("Authorization required"), 401, "Authorization required"},
		{"forbidden", Forbidden("Only the owner can update the conference."), 403, "Only the owner can update the conference."},
		{"bad request", BadRequest("Conference 'name' field required"), 400, "Conference 'name' field required"},
		{"not found", NotFound("No conference found with key: %s", "abc"), 404, "No conference found with key: abc"},
		{"conflict", Conflict("There are no seats available."), 409, "There are no seats available."},
		{"internal", fmt.Errorf("mongo is down"), 500, "server side problem occured while handling the request"},
	}

	for _, test := range tests {
		app := fiber.New()
		testErr := test.err
		app.Get("/", func(c *fiber.Ctx) error { return Respond(c, nil, testErr) })

		res, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, err)
		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)

		var body map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equalf(t, "error", body["status"], test.description)
		assert.Equalf(t, test.expectedData, body["data"], test.description)
	}
}
