package handlers

import (
	"github.com/gofiber/fiber/v2"

	"conference-central/errors"
	"conference-central/mapper"
	"conference-central/model"
)

func (a *API) GetSessionsInWishlist(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}

	ctx := c.UserContext()
	profile, err := a.profileFromUser(ctx, user)
	if err != nil {
		return a.fail(c, err)
	}
	sessions, err := a.Store.GetSessions(ctx, keyIds(profile.SessionWishlist, model.KindSession))
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(mapper.SessionsToForms(sessions))
}

func (a *API) AddSessionToWishlist(c *fiber.Ctx) error {
	return a.wishlist(c, true)
}

func (a *API) DeleteSessionInWishlist(c *fiber.Ctx) error {
	return a.wishlist(c, false)
}

// wishlist adds or removes a session. Adding a session twice is a Conflict;
// removing an absent one reports false.
func (a *API) wishlist(c *fiber.Ctx, add bool) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}
	websafe := c.Params("websafeSessionKey")
	key, err := decodeKey(websafe, model.KindSession)
	if err != nil {
		return a.fail(c, err)
	}
	ctx := c.UserContext()
	session, err := a.getSession(ctx, key, websafe)
	if err != nil {
		return a.fail(c, err)
	}
	canonical := session.Key().Encode()
	profile, err := a.profileFromUser(ctx, user)
	if err != nil {
		return a.fail(c, err)
	}

	if add {
		if profile.HasInWishlist(canonical) {
			return a.fail(c, errors.Conflict("Session already in wishlist"))
		}
		profile.SessionWishlist = append(profile.SessionWishlist, canonical)
	} else if !profile.RemoveFromWishlist(canonical) {
		return c.JSON(model.BooleanMessage{Data: false})
	}

	if err := a.Store.SaveProfile(ctx, profile); err != nil {
		return a.fail(c, err)
	}
	return c.JSON(model.BooleanMessage{Data: true})
}
