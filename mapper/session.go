package mapper

import (
	"strings"

	apperrors "conference-central/errors"
	"conference-central/model"
)

const DefaultDuration = 1

type sessionField struct {
	name    string
	present func(f *model.SessionForm) bool
	apply   func(s *model.Session, f *model.SessionForm) error
}

var sessionFields = []sessionField{
	{
		name:    "name",
		present: func(f *model.SessionForm) bool { return strings.TrimSpace(f.Name) != "" },
		apply: func(s *model.Session, f *model.SessionForm) error {
			s.Name = strings.TrimSpace(f.Name)
			return nil
		},
	},
	{
		name:    "highlights",
		present: func(f *model.SessionForm) bool { return f.Highlights != "" },
		apply: func(s *model.Session, f *model.SessionForm) error {
			s.Highlights = f.Highlights
			return nil
		},
	},
	{
		name:    "speaker",
		present: func(f *model.SessionForm) bool { return f.Speaker != "" },
		apply: func(s *model.Session, f *model.SessionForm) error {
			s.Speaker = strings.TrimSpace(f.Speaker)
			return nil
		},
	},
	{
		name:    "duration",
		present: func(f *model.SessionForm) bool { return f.Duration != nil },
		apply: func(s *model.Session, f *model.SessionForm) error {
			if *f.Duration < 0 {
				return apperrors.BadRequest("duration cannot be negative")
			}
			s.Duration = *f.Duration
			return nil
		},
	},
	{
		name:    "typeOfSession",
		present: func(f *model.SessionForm) bool { return f.TypeOfSession != "" },
		apply: func(s *model.Session, f *model.SessionForm) error {
			t, err := model.ParseSessionType(f.TypeOfSession)
			if err != nil {
				return apperrors.BadRequest("%v", err)
			}
			s.TypeOfSession = string(t)
			return nil
		},
	},
	{
		name:    "date",
		present: func(f *model.SessionForm) bool { return f.Date != "" },
		apply: func(s *model.Session, f *model.SessionForm) error {
			d, err := ParseDate(f.Date)
			if err != nil {
				return err
			}
			s.Date = &d
			return nil
		},
	},
	{
		name:    "startTime",
		present: func(f *model.SessionForm) bool { return f.StartTime != "" },
		apply: func(s *model.Session, f *model.SessionForm) error {
			t, err := ParseTimeOfDay(f.StartTime)
			if err != nil {
				return err
			}
			s.StartTime = &t
			return nil
		},
	},
}

// NewSession builds a session scoped under conference, applying defaults for
// duration and type.
func NewSession(f *model.SessionForm, conference *model.Conference, id string) (*model.Session, error) {
	session := &model.Session{
		Id:              id,
		ConferenceId:    conference.Id,
		OrganizerUserId: conference.OrganizerUserId,
		Duration:        DefaultDuration,
		TypeOfSession:   string(model.SessionNotSpecified),
	}
	for _, field := range sessionFields {
		if !field.present(f) {
			continue
		}
		if err := field.apply(session, f); err != nil {
			return nil, apperrors.BadRequest("%s: %v", field.name, err)
		}
	}
	return session, nil
}

func SessionToForm(s *model.Session) model.SessionForm {
	duration := s.Duration
	return model.SessionForm{
		Name:                 s.Name,
		Highlights:           s.Highlights,
		Speaker:              s.Speaker,
		Duration:             &duration,
		TypeOfSession:        s.TypeOfSession,
		Date:                 FormatDate(s.Date),
		StartTime:            FormatTimeOfDay(s.StartTime),
		WebsafeConferenceKey: s.ConferenceKey().Encode(),
		WebsafeSessionKey:    s.Key().Encode(),
	}
}

func SessionsToForms(sessions []model.Session) model.SessionForms {
	items := make([]model.SessionForm, 0, len(sessions))
	for i := range sessions {
		items = append(items, SessionToForm(&sessions[i]))
	}
	return model.SessionForms{Items: items}
}
