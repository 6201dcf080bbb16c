package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"conference-central/cache"
	"conference-central/model"
)

func (a *API) GetAnnouncement(c *fiber.Ctx) error {
	return c.JSON(model.StringMessage{Data: a.cached(c, cache.AnnouncementsKey)})
}

func (a *API) GetFeaturedSpeaker(c *fiber.Ctx) error {
	return c.JSON(model.StringMessage{Data: a.cached(c, cache.FeaturedSpeakerKey)})
}

// cached reads an aggregate value. A missing entry or an unreachable cache
// both read as empty.
func (a *API) cached(c *fiber.Ctx, key string) string {
	val, _, err := a.Cache.Get(c.UserContext(), key)
	if err != nil {
		a.Log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return val
}
