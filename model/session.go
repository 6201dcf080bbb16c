package model

import "time"

type Session struct {
	Id              string     `json:"_id" bson:"_id"`
	ConferenceId    string     `json:"conference_id" bson:"conference_id"`
	OrganizerUserId string     `json:"organizer_user_id" bson:"organizer_user_id"`
	Name            string     `json:"name" bson:"name"`
	Highlights      string     `json:"highlights" bson:"highlights,omitempty"`
	Speaker         string     `json:"speaker" bson:"speaker"`
	Duration        int        `json:"duration" bson:"duration"`
	TypeOfSession   string     `json:"type_of_session" bson:"type_of_session"`
	Date            *time.Time `json:"date" bson:"date,omitempty"`
	StartTime       *time.Time `json:"start_time" bson:"start_time,omitempty"`
}

func (s Session) Key() *Key {
	return NewSessionKey(s.OrganizerUserId, s.ConferenceId, s.Id)
}

func (s Session) ConferenceKey() *Key {
	return NewConferenceKey(s.OrganizerUserId, s.ConferenceId)
}
