package query

import (
	"strconv"

	"conference-central/database"
	apperrors "conference-central/errors"
	"conference-central/model"
)

// Fields maps the filter names accepted from clients to stored field names.
var Fields = map[string]string{
	"CITY":          database.FieldCity,
	"TOPIC":         database.FieldTopics,
	"MONTH":         database.FieldMonth,
	"MAX_ATTENDEES": database.FieldMaxAttendees,
}

var Operators = map[string]database.Operator{
	"EQ":   database.OpEq,
	"GT":   database.OpGt,
	"GTEQ": database.OpGte,
	"LT":   database.OpLt,
	"LTEQ": database.OpLte,
	"NE":   database.OpNe,
}

var numericFields = map[string]bool{
	database.FieldMonth:        true,
	database.FieldMaxAttendees: true,
}

// FormatFilters validates client filters and converts them to store filters.
// At most one distinct field may carry a non-equality operator; that field is
// returned so the caller can order by it.
func FormatFilters(forms []model.ConferenceQueryForm) (string, []database.Filter, error) {
	inequalityField := ""
	filters := make([]database.Filter, 0, len(forms))

	for _, form := range forms {
		field, fieldOk := Fields[form.Field]
		op, opOk := Operators[form.Operator]
		if !fieldOk || !opOk {
			return "", nil, apperrors.BadRequest("Filter contains invalid field or operator.")
		}

		if op.IsInequality() {
			if inequalityField != "" && inequalityField != field {
				return "", nil, apperrors.BadRequest("Inequality filter is allowed on only one field.")
			}
			inequalityField = field
		}

		var value interface{} = form.Value
		if numericFields[field] {
			n, err := strconv.Atoi(form.Value)
			if err != nil {
				return "", nil, apperrors.BadRequest("Filter value for %s must be an integer.", form.Field)
			}
			value = n
		}
		filters = append(filters, database.Filter{Field: field, Op: op, Value: value})
	}
	return inequalityField, filters, nil
}

// BuildConferenceQuery orders by the inequality field first, when there is
// one, and by name after that.
func BuildConferenceQuery(forms []model.ConferenceQueryForm) (database.ConferenceQuery, error) {
	inequalityField, filters, err := FormatFilters(forms)
	if err != nil {
		return database.ConferenceQuery{}, err
	}

	orderBy := []string{database.FieldName}
	if inequalityField != "" {
		orderBy = []string{inequalityField, database.FieldName}
	}
	return database.ConferenceQuery{Filters: filters, OrderBy: orderBy}, nil
}
