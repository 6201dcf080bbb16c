package handlers

import (
	"github.com/gofiber/fiber/v2"

	"conference-central/mapper"
	"conference-central/model"
)

func (a *API) GetProfile(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}
	profile, err := a.profileFromUser(c.UserContext(), user)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(mapper.ProfileToForm(profile))
}

// SaveProfile updates display name and tee shirt size. Only a changed
// profile is written back.
func (a *API) SaveProfile(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return a.fail(c, err)
	}

	form := new(model.ProfileMiniForm)
	if err := parseBody(c, form); err != nil {
		return a.fail(c, err)
	}
	if err := validateStruct(form); err != nil {
		return a.fail(c, err)
	}

	ctx := c.UserContext()
	profile, err := a.profileFromUser(ctx, user)
	if err != nil {
		return a.fail(c, err)
	}
	changed, err := mapper.ApplyProfileForm(profile, form)
	if err != nil {
		return a.fail(c, err)
	}
	if changed {
		if err := a.Store.SaveProfile(ctx, profile); err != nil {
			return a.fail(c, err)
		}
	}
	return c.JSON(mapper.ProfileToForm(profile))
}
