package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"conference-central/database"
	"conference-central/errors"
	"conference-central/mapper"
	"conference-central/model"
	"conference-central/query"
	"conference-central/tasks"
)

func (a *API) CreateConference(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}

	form := new(model.ConferenceForm)
	if err := parseBody(c, form); err != nil {
		return a.fail(c, err)
	}
	if err := validateStruct(form); err != nil {
		return a.fail(c, err)
	}
	if strings.TrimSpace(form.Name) == "" {
		return a.fail(c, errors.BadRequest("Conference 'name' field required"))
	}

	ctx := c.UserContext()
	profile, err := a.profileFromUser(ctx, user)
	if err != nil {
		return a.fail(c, err)
	}

	conf, err := mapper.NewConference(form, user.UserId, uuid.NewString())
	if err != nil {
		return a.fail(c, err)
	}
	if err := a.Store.InsertConference(ctx, conf); err != nil {
		return a.fail(c, err)
	}

	created := mapper.ConferenceToForm(conf, profile.DisplayName)
	info, err := json.MarshalIndent(created, "", "	")
	if err != nil {
		return a.fail(c, err)
	}
	if user.Email == "" {
		a.Log.Info("no email on file, skipping confirmation", zap.String("userID", user.UserId))
	} else {
		a.enqueue(tasks.NewTask(tasks.KindSendConfirmationEmail, map[string]string{
			tasks.ParamEmail:          user.Email,
			tasks.ParamConferenceInfo: string(info),
		}))
	}

	return c.JSON(created)
}

// UpdateConference applies the present fields inside a transaction. A new
// maxAttendees moves seatsAvailable by the same amount and may not drop
// below the seats already taken.
func (a *API) UpdateConference(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}
	websafe := c.Params("websafeConferenceKey")
	key, err := decodeKey(websafe, model.KindConference)
	if err != nil {
		return a.fail(c, err)
	}

	form := new(model.ConferenceForm)
	if err := parseBody(c, form); err != nil {
		return a.fail(c, err)
	}
	if err := validateStruct(form); err != nil {
		return a.fail(c, err)
	}

	var updated *model.Conference
	txErr := a.Store.RunInTransaction(c.UserContext(), func(ctx context.Context) error {
		conf, err := a.getConference(ctx, key, websafe)
		if err != nil {
			return err
		}
		if conf.OrganizerUserId != user.UserId {
			return errors.Forbidden("Only the owner can update the conference.")
		}

		registered := conf.Registered()
		if err := mapper.ApplyConferenceForm(conf, form); err != nil {
			return err
		}
		if form.MaxAttendees != nil {
			if conf.MaxAttendees < registered {
				return errors.BadRequest("cannot set maxAttendees to %d, %d seats already taken",
					conf.MaxAttendees, registered)
			}
			conf.SeatsAvailable = conf.MaxAttendees - registered
		}

		updated = conf
		return a.Store.SaveConference(ctx, conf)
	})
	if txErr != nil {
		return a.fail(c, txErr)
	}

	profile, err := a.profileFromUser(c.UserContext(), user)
	if err != nil {
		return a.fail(c, err)
	}
	a.enqueue(tasks.NewTask(tasks.KindSetAnnouncement, nil))
	return c.JSON(mapper.ConferenceToForm(updated, profile.DisplayName))
}

func (a *API) GetConference(c *fiber.Ctx) error {
	websafe := c.Params("websafeConferenceKey")
	key, err := decodeKey(websafe, model.KindConference)
	if err != nil {
		return a.fail(c, err)
	}

	ctx := c.UserContext()
	conf, err := a.getConference(ctx, key, websafe)
	if err != nil {
		return a.fail(c, err)
	}
	forms, err := a.conferenceForms(ctx, []model.Conference{*conf})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(forms.Items[0])
}

func (a *API) GetConferencesCreated(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}

	ctx := c.UserContext()
	conferences, err := a.Store.QueryConferences(ctx, database.ConferenceQuery{
		OrganizerUserId: user.UserId,
		OrderBy:         []string{database.FieldName},
	})
	if err != nil {
		return a.fail(c, err)
	}
	forms, err := a.conferenceForms(ctx, conferences)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(forms)
}

func (a *API) QueryConferences(c *fiber.Ctx) error {
	form := new(model.ConferenceQueryForms)
	if err := parseBody(c, form); err != nil {
		return a.fail(c, err)
	}
	if err := validateStruct(form); err != nil {
		return a.fail(c, err)
	}

	q, err := query.BuildConferenceQuery(form.Filters)
	if err != nil {
		return a.fail(c, err)
	}

	ctx := c.UserContext()
	conferences, err := a.Store.QueryConferences(ctx, q)
	if err != nil {
		return a.fail(c, err)
	}
	forms, err := a.conferenceForms(ctx, conferences)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(forms)
}

// GetConferencesToAttend lists the conferences the caller registered for.
func (a *API) GetConferencesToAttend(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}

	ctx := c.UserContext()
	profile, err := a.profileFromUser(ctx, user)
	if err != nil {
		return a.fail(c, err)
	}
	conferences, err := a.Store.GetConferences(ctx, keyIds(profile.ConferenceKeysToAttend, model.KindConference))
	if err != nil {
		return a.fail(c, err)
	}
	forms, err := a.conferenceForms(ctx, conferences)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(forms)
}
