package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"conference-central/cache"
	"conference-central/database"
	"conference-central/model"
)

const AnnouncementTemplate = "Last chance to attend! The following conferences are nearly sold out: %s"

// NearlySoldOutSeats is the largest remaining seat count that still makes a
// conference part of the announcement.
const NearlySoldOutSeats = 5

const confirmationSubject = "You created a new Conference!"

// Processor handles every task kind against the entity store and the cache.
type Processor struct {
	store  database.Store
	cache  cache.Cache
	mailer Mailer
	log    *zap.Logger
}

func NewProcessor(store database.Store, c cache.Cache, mailer Mailer, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	if mailer == nil {
		mailer = NewLogMailer(log)
	}
	return &Processor{store: store, cache: c, mailer: mailer, log: log}
}

func (p *Processor) Handle(ctx context.Context, task Task) error {
	switch task.Kind {
	case KindSendConfirmationEmail:
		body := "Hi, you have created a following conference:\r\n\r\n" + task.Params[ParamConferenceInfo]
		return p.mailer.Send(ctx, task.Params[ParamEmail], confirmationSubject, body)
	case KindSetAnnouncement:
		_, err := p.CacheAnnouncement(ctx)
		return err
	case KindSetFeaturedSpeaker:
		_, err := p.CacheFeaturedSpeaker(ctx, task.Params[ParamSpeaker], task.Params[ParamConferenceKey])
		return err
	}
	return fmt.Errorf("unknown task kind %q", task.Kind)
}

// CacheAnnouncement stores the nearly-sold-out announcement, or clears it
// when no conference qualifies, and returns what was stored.
func (p *Processor) CacheAnnouncement(ctx context.Context) (string, error) {
	conferences, err := p.store.QueryConferences(ctx, database.ConferenceQuery{
		Filters: []database.Filter{
			{Field: database.FieldSeatsAvailable, Op: database.OpLte, Value: NearlySoldOutSeats},
			{Field: database.FieldSeatsAvailable, Op: database.OpGt, Value: 0},
		},
		OrderBy: []string{database.FieldSeatsAvailable, database.FieldName},
	})
	if err != nil {
		return "", fmt.Errorf("cannot query nearly sold out conferences: %w", err)
	}

	if len(conferences) == 0 {
		if err := p.cache.Delete(ctx, cache.AnnouncementsKey); err != nil {
			return "", fmt.Errorf("cannot clear announcement: %w", err)
		}
		return "", nil
	}

	names := make([]string, 0, len(conferences))
	for _, c := range conferences {
		names = append(names, c.Name)
	}
	announcement := fmt.Sprintf(AnnouncementTemplate, strings.Join(names, ", "))
	if err := p.cache.Set(ctx, cache.AnnouncementsKey, announcement); err != nil {
		return "", fmt.Errorf("cannot store announcement: %w", err)
	}
	p.log.Debug("announcement refreshed", zap.Int("conferences", len(conferences)))
	return announcement, nil
}

// CacheFeaturedSpeaker features speaker when they hold at least two sessions
// in the conference. Otherwise an empty value is stored only if nothing is
// cached yet, so an earlier featured speaker stays in place.
func (p *Processor) CacheFeaturedSpeaker(ctx context.Context, speaker, websafeConferenceKey string) (string, error) {
	key, err := model.DecodeKey(websafeConferenceKey)
	if err != nil || key.Kind != model.KindConference {
		return "", fmt.Errorf("not a valid conference key %q", websafeConferenceKey)
	}

	var sessions []model.Session
	if speaker != "" {
		sessions, err = p.store.QuerySessions(ctx, database.SessionQuery{
			ConferenceIds: []string{key.Id},
			Speaker:       speaker,
		})
		if err != nil {
			return "", fmt.Errorf("cannot query sessions of %s: %w", speaker, err)
		}
	}

	if len(sessions) >= 2 {
		featured := model.FeaturedSpeaker{Speaker: speaker, Sessions: make([]string, 0, len(sessions))}
		for _, s := range sessions {
			featured.Sessions = append(featured.Sessions, s.Name)
		}
		payload, err := json.Marshal(featured)
		if err != nil {
			return "", err
		}
		if err := p.cache.Set(ctx, cache.FeaturedSpeakerKey, string(payload)); err != nil {
			return "", fmt.Errorf("cannot store featured speaker: %w", err)
		}
		return string(payload), nil
	}

	current, exists, err := p.cache.Get(ctx, cache.FeaturedSpeakerKey)
	if err != nil {
		return "", fmt.Errorf("cannot read featured speaker: %w", err)
	}
	if exists && current != "" {
		return current, nil
	}
	if err := p.cache.Set(ctx, cache.FeaturedSpeakerKey, ""); err != nil {
		return "", fmt.Errorf("cannot store featured speaker: %w", err)
	}
	return "", nil
}
