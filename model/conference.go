package model

import "time"

type Conference struct {
	Id              string     `json:"_id" bson:"_id"`
	OrganizerUserId string     `json:"organizer_user_id" bson:"organizer_user_id"`
	Name            string     `json:"name" bson:"name"`
	Description     string     `json:"description" bson:"description,omitempty"`
	Topics          []string   `json:"topics" bson:"topics"`
	City            string     `json:"city" bson:"city"`
	StartDate       *time.Time `json:"start_date" bson:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date" bson:"end_date,omitempty"`
	Month           int        `json:"month" bson:"month"`
	MaxAttendees    int        `json:"max_attendees" bson:"max_attendees"`
	SeatsAvailable  int        `json:"seats_available" bson:"seats_available"`
}

func (c Conference) Key() *Key {
	return NewConferenceKey(c.OrganizerUserId, c.Id)
}

// Registered is the number of seats already taken.
func (c Conference) Registered() int {
	return c.MaxAttendees - c.SeatsAvailable
}
