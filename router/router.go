package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"conference-central/handlers"
	"conference-central/logger"
	"conference-central/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.API) {
	api := app.Group("/",
		recover.New(),
		requestid.New(),
		logger.Middleware(h.Log),
		middleware.Authorize(h.Secret))
	api.Get("/health", h.Health)

	//Login
	api.Post("/login", h.Login)

	//Conference
	conference := api.Group("/conference")
	conference.Post("/", h.CreateConference)
	conference.Get("/announcement/get", h.GetAnnouncement)
	conference.Get("/:websafeConferenceKey", h.GetConference)
	conference.Put("/:websafeConferenceKey", h.UpdateConference)
	conference.Post("/:websafeConferenceKey", h.RegisterForConference)
	conference.Delete("/:websafeConferenceKey", h.UnregisterFromConference)

	api.Post("/getConferencesCreated", h.GetConferencesCreated)
	api.Post("/queryConferences", h.QueryConferences)
	api.Get("/conferences/attending", h.GetConferencesToAttend)

	//Profile
	profile := api.Group("/profile")
	profile.Get("/", h.GetProfile)
	profile.Post("/", h.SaveProfile)
	profile.Get("/wishlist", h.GetSessionsInWishlist)
	profile.Post("/wishlist/:websafeSessionKey", h.AddSessionToWishlist)
	profile.Delete("/wishlist/:websafeSessionKey", h.DeleteSessionInWishlist)

	//Session
	api.Post("/createSession/:websafeConferenceKey", h.CreateSession)
	api.Get("/getConferenceSessions/:websafeConferenceKey", h.GetConferenceSessions)
	api.Get("/getSessionsBySpeaker", h.GetSessionsBySpeaker)
	api.Get("/getConferenceSessionsByType/:websafeConferenceKey", h.GetConferenceSessionsByType)
	api.Get("/getConferenceSessionsByTime/:websafeConferenceKey", h.GetConferenceSessionsByTime)
	api.Get("/getSessionsExcludeTypeTime", h.GetSessionsExcludeTypeTime)
	api.Get("/getAttendedConferenceSessions", h.GetAttendedConferenceSessions)
	api.Get("/getFeaturedSpeaker", h.GetFeaturedSpeaker)
}
