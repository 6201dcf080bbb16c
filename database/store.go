package database

import (
	"context"
	"errors"
	"time"

	"conference-central/model"
)

var ErrNotFound = errors.New("entity not found")

// Stored field names usable in conference filters and orderings.
const (
	FieldName           = "name"
	FieldCity           = "city"
	FieldTopics         = "topics"
	FieldMonth          = "month"
	FieldMaxAttendees   = "max_attendees"
	FieldSeatsAvailable = "seats_available"
)

type Operator string

const (
	OpEq  Operator = "="
	OpGt  Operator = ">"
	OpGte Operator = ">="
	OpLt  Operator = "<"
	OpLte Operator = "<="
	OpNe  Operator = "!="
)

func (o Operator) IsInequality() bool {
	return o != OpEq
}

type Filter struct {
	Field string
	Op    Operator
	Value interface{}
}

// ConferenceQuery selects conferences matching every filter. An empty
// OrganizerUserId does not constrain the result; results are sorted by
// OrderBy fields ascending.
type ConferenceQuery struct {
	OrganizerUserId string
	Filters         []Filter
	OrderBy         []string
}

// SessionQuery selects sessions matching every non-empty member. Results are
// sorted by name.
type SessionQuery struct {
	ConferenceIds   []string
	Speaker         string
	TypeOfSession   string
	Date            *time.Time
	StartTimeFrom   *time.Time
	StartTimeTo     *time.Time
	StartTimeBefore *time.Time
}

// Store is the entity store behind every handler.
type Store interface {
	GetProfile(ctx context.Context, userId string) (*model.Profile, error)
	GetProfiles(ctx context.Context, userIds []string) (map[string]model.Profile, error)
	SaveProfile(ctx context.Context, profile *model.Profile) error

	InsertConference(ctx context.Context, conference *model.Conference) error
	GetConference(ctx context.Context, id string) (*model.Conference, error)
	GetConferences(ctx context.Context, ids []string) ([]model.Conference, error)
	SaveConference(ctx context.Context, conference *model.Conference) error
	QueryConferences(ctx context.Context, query ConferenceQuery) ([]model.Conference, error)

	InsertSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	GetSessions(ctx context.Context, ids []string) ([]model.Session, error)
	QuerySessions(ctx context.Context, query SessionQuery) ([]model.Session, error)

	GetUserData(ctx context.Context, login string) (*model.UserData, error)

	// RunInTransaction runs fn so that either every write it performs through
	// the context it receives is applied, or none is.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
