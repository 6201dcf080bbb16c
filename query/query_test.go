package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-central/database"
	apperrors "conference-central/errors"
	"conference-central/model"
)

func TestFormatFilters(t *testing.T) {
	tests := []struct {
		description     string
		forms           []model.ConferenceQueryForm
		inequalityField string
		filters         []database.Filter
		fails           bool
	}{
		{
			description: "no filters",
			forms:       nil,
			filters:     []database.Filter{},
		},
		{
			description: "equality filters only",
			forms: []model.ConferenceQueryForm{
				{Field: "CITY", Operator: "EQ", Value: "London"},
				{Field: "TOPIC", Operator: "EQ", Value: "Go"},
			},
			filters: []database.Filter{
				{Field: database.FieldCity, Op: database.OpEq, Value: "London"},
				{Field: database.FieldTopics, Op: database.OpEq, Value: "Go"},
			},
		},
		{
			description: "numeric value is coerced",
			forms: []model.ConferenceQueryForm{
				{Field: "MONTH", Operator: "GT", Value: "6"},
				{Field: "MONTH", Operator: "LTEQ", Value: "9"},
			},
			inequalityField: database.FieldMonth,
			filters: []database.Filter{
				{Field: database.FieldMonth, Op: database.OpGt, Value: 6},
				{Field: database.FieldMonth, Op: database.OpLte, Value: 9},
			},
		},
		{
			description: "inequality on two fields",
			forms: []model.ConferenceQueryForm{
				{Field: "MONTH", Operator: "GT", Value: "6"},
				{Field: "MAX_ATTENDEES", Operator: "LT", Value: "10"},
			},
			fails: true,
		},
		{
			description: "unknown field",
			forms:       []model.ConferenceQueryForm{{Field: "ORGANIZER", Operator: "EQ", Value: "x"}},
			fails:       true,
		},
		{
			description: "unknown operator",
			forms:       []model.ConferenceQueryForm{{Field: "CITY", Operator: "LIKE", Value: "x"}},
			fails:       true,
		},
		{
			description: "non numeric month",
			forms:       []model.ConferenceQueryForm{{Field: "MONTH", Operator: "EQ", Value: "June"}},
			fails:       true,
		},
	}

	for _, test := range tests {
		field, filters, err := FormatFilters(test.forms)
		if test.fails {
			assert.Truef(t, apperrors.Is(err, apperrors.KindBadRequest), test.description)
			continue
		}
		require.NoErrorf(t, err, test.description)
		assert.Equalf(t, test.inequalityField, field, test.description)
		assert.Equalf(t, test.filters, filters, test.description)
	}
}

func TestBuildConferenceQueryOrdering(t *testing.T) {
	q, err := BuildConferenceQuery([]model.ConferenceQueryForm{{Field: "CITY", Operator: "EQ", Value: "London"}})
	require.NoError(t, err)
	assert.Equal(t, []string{database.FieldName}, q.OrderBy)

	q, err = BuildConferenceQuery([]model.ConferenceQueryForm{{Field: "MAX_ATTENDEES", Operator: "GTEQ", Value: "10"}})
	require.NoError(t, err)
	assert.Equal(t, []string{database.FieldMaxAttendees, database.FieldName}, q.OrderBy)

	_, err = BuildConferenceQuery([]model.ConferenceQueryForm{
		{Field: "CITY", Operator: "NE", Value: "London"},
		{Field: "MONTH", Operator: "GT", Value: "1"},
	})
	assert.EqualError(t, err, "Inequality filter is allowed on only one field.")
}
