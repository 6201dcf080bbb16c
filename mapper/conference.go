// Package mapper copies fields between wire forms and stored entities.
// Every copyable field is listed explicitly in a per-entity table.
package mapper

import (
	"strings"

	apperrors "conference-central/errors"
	"conference-central/model"
)

const (
	DefaultCity           = "Default City"
	DefaultMaxAttendees   = 0
	DefaultSeatsAvailable = 0
)

var DefaultTopics = []string{"Default", "Topic"}

// conferenceField copies one form field onto a conference when the form
// carries a value for it.
type conferenceField struct {
	name    string
	present func(f *model.ConferenceForm) bool
	apply   func(c *model.Conference, f *model.ConferenceForm) error
}

var conferenceFields = []conferenceField{
	{
		name:    "name",
		present: func(f *model.ConferenceForm) bool { return strings.TrimSpace(f.Name) != "" },
		apply: func(c *model.Conference, f *model.ConferenceForm) error {
			c.Name = strings.TrimSpace(f.Name)
			return nil
		},
	},
	{
		name:    "description",
		present: func(f *model.ConferenceForm) bool { return f.Description != "" },
		apply: func(c *model.Conference, f *model.ConferenceForm) error {
			c.Description = f.Description
			return nil
		},
	},
	{
		name:    "topics",
		present: func(f *model.ConferenceForm) bool { return len(f.Topics) > 0 },
		apply: func(c *model.Conference, f *model.ConferenceForm) error {
			c.Topics = append([]string(nil), f.Topics...)
			return nil
		},
	},
	{
		name:    "city",
		present: func(f *model.ConferenceForm) bool { return f.City != "" },
		apply: func(c *model.Conference, f *model.ConferenceForm) error {
			c.City = f.City
			return nil
		},
	},
	{
		name:    "startDate",
		present: func(f *model.ConferenceForm) bool { return f.StartDate != "" },
		apply: func(c *model.Conference, f *model.ConferenceForm) error {
			d, err := ParseDate(f.StartDate)
			if err != nil {
				return err
			}
			c.StartDate = &d
			c.Month = int(d.Month())
			return nil
		},
	},
	{
		name:    "endDate",
		present: func(f *model.ConferenceForm) bool { return f.EndDate != "" },
		apply: func(c *model.Conference, f *model.ConferenceForm) error {
			d, err := ParseDate(f.EndDate)
			if err != nil {
				return err
			}
			c.EndDate = &d
			return nil
		},
	},
	{
		name:    "maxAttendees",
		present: func(f *model.ConferenceForm) bool { return f.MaxAttendees != nil },
		apply: func(c *model.Conference, f *model.ConferenceForm) error {
			if *f.MaxAttendees < 0 {
				return apperrors.BadRequest("maxAttendees cannot be negative")
			}
			c.MaxAttendees = *f.MaxAttendees
			return nil
		},
	},
}

// ApplyConferenceForm overwrites the fields present in the form and leaves
// the others untouched. Setting startDate recomputes month.
func ApplyConferenceForm(c *model.Conference, f *model.ConferenceForm) error {
	for _, field := range conferenceFields {
		if !field.present(f) {
			continue
		}
		if err := field.apply(c, f); err != nil {
			return apperrors.BadRequest("%s: %v", field.name, err)
		}
	}
	return nil
}

// ApplyConferenceDefaults fills in missing city, topics and maxAttendees.
func ApplyConferenceDefaults(f *model.ConferenceForm) {
	if f.City == "" {
		f.City = DefaultCity
	}
	if len(f.Topics) == 0 {
		f.Topics = append([]string(nil), DefaultTopics...)
	}
	if f.MaxAttendees == nil {
		max := DefaultMaxAttendees
		f.MaxAttendees = &max
	}
}

// NewConference builds the entity stored by conference creation. Seats start
// equal to maxAttendees; month is zero without a start date.
func NewConference(f *model.ConferenceForm, organizerUserId, id string) (*model.Conference, error) {
	form := *f
	ApplyConferenceDefaults(&form)

	conf := &model.Conference{
		Id:              id,
		OrganizerUserId: organizerUserId,
		SeatsAvailable:  DefaultSeatsAvailable,
	}
	if err := ApplyConferenceForm(conf, &form); err != nil {
		return nil, err
	}
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}
	return conf, nil
}

func ConferenceToForm(c *model.Conference, displayName string) model.ConferenceForm {
	month := c.Month
	maxAttendees := c.MaxAttendees
	seatsAvailable := c.SeatsAvailable
	return model.ConferenceForm{
		Name:                 c.Name,
		Description:          c.Description,
		OrganizerUserId:      c.OrganizerUserId,
		Topics:               append([]string(nil), c.Topics...),
		City:                 c.City,
		StartDate:            FormatDate(c.StartDate),
		Month:                &month,
		MaxAttendees:         &maxAttendees,
		SeatsAvailable:       &seatsAvailable,
		EndDate:              FormatDate(c.EndDate),
		WebsafeKey:           c.Key().Encode(),
		OrganizerDisplayName: displayName,
	}
}
