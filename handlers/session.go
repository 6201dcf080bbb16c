package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"conference-central/database"
	"conference-central/errors"
	"conference-central/mapper"
	"conference-central/model"
	"conference-central/tasks"
)

// CreateSession is reserved to the organizer of the conference.
func (a *API) CreateSession(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}
	websafe := c.Params("websafeConferenceKey")
	key, err := decodeKey(websafe, model.KindConference)
	if err != nil {
		return a.fail(c, err)
	}

	form := new(model.SessionForm)
	if err := parseBody(c, form); err != nil {
		return a.fail(c, err)
	}
	if err := validateStruct(form); err != nil {
		return a.fail(c, err)
	}
	if strings.TrimSpace(form.Name) == "" {
		return a.fail(c, errors.BadRequest("Session 'name' field required"))
	}

	ctx := c.UserContext()
	conf, err := a.getConference(ctx, key, websafe)
	if err != nil {
		return a.fail(c, err)
	}
	if conf.OrganizerUserId != user.UserId {
		return a.fail(c, errors.Unauthorized("Only the organizer of the conference can create sessions"))
	}

	session, err := mapper.NewSession(form, conf, uuid.NewString())
	if err != nil {
		return a.fail(c, err)
	}
	if err := a.Store.InsertSession(ctx, session); err != nil {
		return a.fail(c, err)
	}

	a.enqueue(tasks.NewTask(tasks.KindSetFeaturedSpeaker, map[string]string{
		tasks.ParamSpeaker:       session.Speaker,
		tasks.ParamConferenceKey: conf.Key().Encode(),
	}))
	return c.JSON(mapper.SessionToForm(session))
}

func (a *API) sessions(c *fiber.Ctx, q database.SessionQuery) error {
	sessions, err := a.Store.QuerySessions(c.UserContext(), q)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(mapper.SessionsToForms(sessions))
}

// conferenceFromParams resolves the conference named in the route.
func (a *API) conferenceFromParams(c *fiber.Ctx) (*model.Conference, error) {
	websafe := c.Params("websafeConferenceKey")
	key, err := decodeKey(websafe, model.KindConference)
	if err != nil {
		return nil, err
	}
	return a.getConference(c.UserContext(), key, websafe)
}

func (a *API) GetConferenceSessions(c *fiber.Ctx) error {
	conf, err := a.conferenceFromParams(c)
	if err != nil {
		return a.fail(c, err)
	}
	return a.sessions(c, database.SessionQuery{ConferenceIds: []string{conf.Id}})
}

func (a *API) GetSessionsBySpeaker(c *fiber.Ctx) error {
	speaker := c.Query("speaker")
	if speaker == "" {
		return a.fail(c, errors.BadRequest("'speaker' query parameter required"))
	}
	return a.sessions(c, database.SessionQuery{Speaker: speaker})
}

func (a *API) GetConferenceSessionsByType(c *fiber.Ctx) error {
	typeOfSession, err := model.ParseSessionType(c.Query("typeOfSession"))
	if err != nil {
		return a.fail(c, errors.BadRequest("%v", err))
	}
	conf, err := a.conferenceFromParams(c)
	if err != nil {
		return a.fail(c, err)
	}
	return a.sessions(c, database.SessionQuery{
		ConferenceIds: []string{conf.Id},
		TypeOfSession: string(typeOfSession),
	})
}

// GetConferenceSessionsByTime returns the sessions held on conferenceDate
// that start within [startTime, endTime].
func (a *API) GetConferenceSessionsByTime(c *fiber.Ctx) error {
	date, err := mapper.ParseDate(c.Query("conferenceDate"))
	if err != nil {
		return a.fail(c, err)
	}
	from, err := mapper.ParseTimeOfDay(c.Query("startTime"))
	if err != nil {
		return a.fail(c, err)
	}
	to, err := mapper.ParseTimeOfDay(c.Query("endTime"))
	if err != nil {
		return a.fail(c, err)
	}
	conf, err := a.conferenceFromParams(c)
	if err != nil {
		return a.fail(c, err)
	}
	return a.sessions(c, database.SessionQuery{
		ConferenceIds: []string{conf.Id},
		Date:          &date,
		StartTimeFrom: &from,
		StartTimeTo:   &to,
	})
}

// GetSessionsExcludeTypeTime lists sessions starting before latestTime whose
// type differs from excludedSessionType. Both parameters are optional. The
// type exclusion runs here rather than in the store, which only supports one
// inequality per query.
func (a *API) GetSessionsExcludeTypeTime(c *fiber.Ctx) error {
	q := database.SessionQuery{}
	if latest := c.Query("latestTime"); latest != "" {
		before, err := mapper.ParseTimeOfDay(latest)
		if err != nil {
			return a.fail(c, err)
		}
		q.StartTimeBefore = &before
	}

	excluded := ""
	if raw := c.Query("excludedSessionType"); raw != "" {
		t, err := model.ParseSessionType(raw)
		if err != nil {
			return a.fail(c, errors.BadRequest("%v", err))
		}
		excluded = string(t)
	}

	sessions, err := a.Store.QuerySessions(c.UserContext(), q)
	if err != nil {
		return a.fail(c, err)
	}
	if excluded != "" {
		kept := sessions[:0]
		for _, s := range sessions {
			if s.TypeOfSession != excluded {
				kept = append(kept, s)
			}
		}
		sessions = kept
	}
	return c.JSON(mapper.SessionsToForms(sessions))
}

// GetAttendedConferenceSessions lists every session of the conferences the
// caller registered for.
func (a *API) GetAttendedConferenceSessions(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}
	profile, err := a.profileFromUser(c.UserContext(), user)
	if err != nil {
		return a.fail(c, err)
	}
	return a.sessions(c, database.SessionQuery{
		ConferenceIds: keyIds(profile.ConferenceKeysToAttend, model.KindConference),
	})
}
