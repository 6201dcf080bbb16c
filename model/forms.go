package model

// Wire forms exchanged with clients. Optional numeric fields are pointers so
// that an omitted field can be told apart from an explicit zero.

type ConferenceForm struct {
	Name                 string   `json:"name,omitempty"`
	Description          string   `json:"description,omitempty"`
	OrganizerUserId      string   `json:"organizerUserId,omitempty"`
	Topics               []string `json:"topics,omitempty"`
	City                 string   `json:"city,omitempty"`
	StartDate            string   `json:"startDate,omitempty"`
	Month                *int     `json:"month,omitempty"`
	MaxAttendees         *int     `json:"maxAttendees,omitempty" validate:"omitempty,min=0"`
	SeatsAvailable       *int     `json:"seatsAvailable,omitempty"`
	EndDate              string   `json:"endDate,omitempty"`
	WebsafeKey           string   `json:"websafeKey,omitempty"`
	OrganizerDisplayName string   `json:"organizerDisplayName,omitempty"`
}

type ConferenceForms struct {
	Items []ConferenceForm `json:"items"`
}

type ConferenceQueryForm struct {
	Field    string `json:"field" validate:"required"`
	Operator string `json:"operator" validate:"required"`
	Value    string `json:"value"`
}

type ConferenceQueryForms struct {
	Filters []ConferenceQueryForm `json:"filters" validate:"dive"`
}

type ProfileForm struct {
	DisplayName            string   `json:"displayName"`
	MainEmail              string   `json:"mainEmail"`
	TeeShirtSize           string   `json:"teeShirtSize"`
	ConferenceKeysToAttend []string `json:"conferenceKeysToAttend"`
	SessionWishlist        []string `json:"sessionWishlist"`
}

type ProfileMiniForm struct {
	DisplayName  string `json:"displayName,omitempty" validate:"omitempty,max=100"`
	TeeShirtSize string `json:"teeShirtSize,omitempty" validate:"omitempty,oneof=NOT_SPECIFIED XS_M XS_W S_M S_W M_M M_W L_M L_W XL_M XL_W XXL_M XXL_W XXXL_M XXXL_W"`
}

type SessionForm struct {
	Name                 string `json:"name,omitempty"`
	Highlights           string `json:"highlights,omitempty"`
	Speaker              string `json:"speaker,omitempty"`
	Duration             *int   `json:"duration,omitempty" validate:"omitempty,min=0"`
	TypeOfSession        string `json:"typeOfSession,omitempty" validate:"omitempty,oneof=NOT_SPECIFIED LECTURE KEYNOTE WORKSHOP DEMONSTRATION PANEL"`
	Date                 string `json:"date,omitempty"`
	StartTime            string `json:"startTime,omitempty"`
	WebsafeConferenceKey string `json:"websafeConferenceKey,omitempty"`
	WebsafeSessionKey    string `json:"websafeSessionKey,omitempty"`
}

type SessionForms struct {
	Items []SessionForm `json:"items"`
}

type BooleanMessage struct {
	Data bool `json:"data"`
}

type StringMessage struct {
	Data string `json:"data"`
}

// FeaturedSpeaker is the payload kept in the aggregate cache.
type FeaturedSpeaker struct {
	Speaker  string   `json:"speaker"`
	Sessions []string `json:"sessions"`
}
