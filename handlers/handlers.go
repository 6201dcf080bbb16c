package handlers

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"conference-central/cache"
	"conference-central/database"
	"conference-central/errors"
	"conference-central/mapper"
	"conference-central/middleware"
	"conference-central/model"
	"conference-central/tasks"
)

// API holds the collaborators shared by every endpoint.
type API struct {
	Store    database.Store
	Cache    cache.Cache
	Tasks    tasks.Enqueuer
	Log      *zap.Logger
	Secret   string
	TokenTTL time.Duration
}

func New(store database.Store, c cache.Cache, queue tasks.Enqueuer, log *zap.Logger, secret string, tokenTTL time.Duration) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{Store: store, Cache: c, Tasks: queue, Log: log, Secret: secret, TokenTTL: tokenTTL}
}

func (a *API) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success", "message": "ok", "data": nil})
}

func (a *API) fail(c *fiber.Ctx, err error) error {
	return errors.Respond(c, a.Log, err)
}

func (a *API) enqueue(task tasks.Task) {
	if a.Tasks == nil || !a.Tasks.Enqueue(task) {
		a.Log.Warn("task dropped", zap.String("kind", string(task.Kind)))
	}
}

func requireUser(c *fiber.Ctx) (*model.Identity, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, errors.Unauthorized("Authorization required")
	}
	return user, nil
}

// parseBody decodes a JSON body into out. An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return errors.BadRequest("unacceptable request body: %v", err)
	}
	return nil
}

func decodeKey(websafe, kind string) (*model.Key, error) {
	key, err := model.DecodeKey(websafe)
	if err != nil || key.Kind != kind {
		switch kind {
		case model.KindConference:
			return nil, errors.BadRequest("not a valid conference key: %s", websafe)
		case model.KindSession:
			return nil, errors.BadRequest("not a valid session key: %s", websafe)
		}
		return nil, errors.BadRequest("not a valid key: %s", websafe)
	}
	return key, nil
}

// profileFromUser returns the caller's profile, creating it on first use.
func (a *API) profileFromUser(ctx context.Context, user *model.Identity) (*model.Profile, error) {
	profile, err := a.Store.GetProfile(ctx, user.UserId)
	if err == nil {
		return profile, nil
	}
	if !stderrors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	profile = mapper.NewProfile(user)
	if err := a.Store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// getConference loads the conference named by key. The whole ancestor path
// must match the stored entity, not just the id.
func (a *API) getConference(ctx context.Context, key *model.Key, websafe string) (*model.Conference, error) {
	conf, err := a.Store.GetConference(ctx, key.Id)
	if stderrors.Is(err, database.ErrNotFound) || (err == nil && conf.Key().String() != key.String()) {
		return nil, errors.NotFound("No conference found with key: %s", websafe)
	}
	return conf, err
}

func (a *API) getSession(ctx context.Context, key *model.Key, websafe string) (*model.Session, error) {
	session, err := a.Store.GetSession(ctx, key.Id)
	if stderrors.Is(err, database.ErrNotFound) || (err == nil && session.Key().String() != key.String()) {
		return nil, errors.NotFound("No session found with key: %s", websafe)
	}
	return session, err
}

// conferenceForms resolves every distinct organizer with a single multi-get.
func (a *API) conferenceForms(ctx context.Context, conferences []model.Conference) (model.ConferenceForms, error) {
	ids := []string{}
	seen := map[string]bool{}
	for _, conf := range conferences {
		if !seen[conf.OrganizerUserId] {
			seen[conf.OrganizerUserId] = true
			ids = append(ids, conf.OrganizerUserId)
		}
	}
	profiles, err := a.Store.GetProfiles(ctx, ids)
	if err != nil {
		return model.ConferenceForms{}, err
	}

	items := make([]model.ConferenceForm, 0, len(conferences))
	for i := range conferences {
		name := profiles[conferences[i].OrganizerUserId].DisplayName
		items = append(items, mapper.ConferenceToForm(&conferences[i], name))
	}
	return model.ConferenceForms{Items: items}, nil
}

// keyIds decodes websafe keys of the given kind, skipping stale entries.
func keyIds(websafeKeys []string, kind string) []string {
	ids := make([]string, 0, len(websafeKeys))
	for _, websafe := range websafeKeys {
		key, err := model.DecodeKey(websafe)
		if err != nil || key.Kind != kind {
			continue
		}
		ids = append(ids, key.Id)
	}
	return ids
}
