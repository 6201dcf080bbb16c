package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"conference-central/errors"
	"conference-central/model"
	"conference-central/tasks"
)

func (a *API) RegisterForConference(c *fiber.Ctx) error {
	return a.conferenceRegistration(c, true)
}

func (a *API) UnregisterFromConference(c *fiber.Ctx) error {
	return a.conferenceRegistration(c, false)
}

// conferenceRegistration moves the caller between registered and not
// registered. The profile's attendance list and the conference's seat
// counter change in one transaction.
func (a *API) conferenceRegistration(c *fiber.Ctx, register bool) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}
	websafe := c.Params("websafeConferenceKey")
	key, err := decodeKey(websafe, model.KindConference)
	if err != nil {
		return a.fail(c, err)
	}
	changed := false
	txErr := a.Store.RunInTransaction(c.UserContext(), func(ctx context.Context) error {
		profile, err := a.profileFromUser(ctx, user)
		if err != nil {
			return err
		}
		conf, err := a.getConference(ctx, key, websafe)
		if err != nil {
			return err
		}
		canonical := conf.Key().Encode()

		if register {
			if profile.IsAttending(canonical) {
				return errors.Conflict("You have already registered for this conference")
			}
			if conf.SeatsAvailable <= 0 {
				return errors.Conflict("There are no seats available.")
			}
			profile.ConferenceKeysToAttend = append(profile.ConferenceKeysToAttend, canonical)
			conf.SeatsAvailable--
		} else {
			if !profile.RemoveConference(canonical) {
				return nil
			}
			conf.SeatsAvailable++
		}

		if err := a.Store.SaveProfile(ctx, profile); err != nil {
			return err
		}
		if err := a.Store.SaveConference(ctx, conf); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if txErr != nil {
		return a.fail(c, txErr)
	}

	if changed {
		a.enqueue(tasks.NewTask(tasks.KindSetAnnouncement, nil))
	}
	return c.JSON(model.BooleanMessage{Data: changed})
}
