package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-central/cache"
	"conference-central/database"
	"conference-central/model"
)

type recordingMailer struct {
	to, subject, body string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return nil
}

func newProcessor(t *testing.T) (*Processor, *database.MemoryStore, *cache.MemoryCache, *recordingMailer) {
	t.Helper()
	store := database.NewMemoryStore()
	c := cache.NewMemoryCache()
	mailer := &recordingMailer{}
	return NewProcessor(store, c, mailer, nil), store, c, mailer
}

func addSession(t *testing.T, store *database.MemoryStore, id, conferenceId, speaker, name string) {
	t.Helper()
	require.NoError(t, store.InsertSession(context.Background(), &model.Session{
		Id: id, ConferenceId: conferenceId, OrganizerUserId: "u1", Speaker: speaker, Name: name,
	}))
}

func featured(t *testing.T, c *cache.MemoryCache) (string, bool) {
	t.Helper()
	val, ok, err := c.Get(context.Background(), cache.FeaturedSpeakerKey)
	require.NoError(t, err)
	return val, ok
}

func TestCacheAnnouncement(t *testing.T) {
	p, store, c, _ := newProcessor(t)
	ctx := context.Background()

	for _, conf := range []model.Conference{
		{Id: "c1", OrganizerUserId: "u1", Name: "PyCon", MaxAttendees: 100, SeatsAvailable: 2},
		{Id: "c2", OrganizerUserId: "u1", Name: "GopherCon", MaxAttendees: 100, SeatsAvailable: 5},
		{Id: "c3", OrganizerUserId: "u1", Name: "DevFest", MaxAttendees: 100, SeatsAvailable: 0},
		{Id: "c4", OrganizerUserId: "u1", Name: "RustConf", MaxAttendees: 100, SeatsAvailable: 6},
	} {
		conf := conf
		require.NoError(t, store.InsertConference(ctx, &conf))
	}

	announcement, err := p.CacheAnnouncement(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(AnnouncementTemplate, "PyCon, GopherCon"), announcement)

	cached, ok, err := c.Get(ctx, cache.AnnouncementsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, announcement, cached)

	for _, id := range []string{"c1", "c2"} {
		conf, err := store.GetConference(ctx, id)
		require.NoError(t, err)
		conf.SeatsAvailable = 50
		require.NoError(t, store.SaveConference(ctx, conf))
	}
	announcement, err = p.CacheAnnouncement(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", announcement)
	_, ok, err = c.Get(ctx, cache.AnnouncementsKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheFeaturedSpeaker(t *testing.T) {
	p, store, c, _ := newProcessor(t)
	ctx := context.Background()
	conferenceKey := model.NewConferenceKey("u1", "c1").Encode()

	addSession(t, store, "s1", "c1", "Alice", "Intro")
	_, err := p.CacheFeaturedSpeaker(ctx, "Alice", conferenceKey)
	require.NoError(t, err)
	val, ok := featured(t, c)
	assert.True(t, ok)
	assert.Equal(t, "", val, "a single session is not featured")

	addSession(t, store, "s2", "c1", "Alice", "Deep Dive")
	addSession(t, store, "s3", "c2", "Alice", "Elsewhere")
	_, err = p.CacheFeaturedSpeaker(ctx, "Alice", conferenceKey)
	require.NoError(t, err)

	val, _ = featured(t, c)
	var got model.FeaturedSpeaker
	require.NoError(t, json.Unmarshal([]byte(val), &got))
	assert.Equal(t, model.FeaturedSpeaker{Speaker: "Alice", Sessions: []string{"Deep Dive", "Intro"}}, got)

	addSession(t, store, "s4", "c1", "Bob", "Panel")
	_, err = p.CacheFeaturedSpeaker(ctx, "Bob", conferenceKey)
	require.NoError(t, err)
	after, _ := featured(t, c)
	assert.Equal(t, val, after, "a single-session speaker keeps the current featured speaker")
}

func TestCacheFeaturedSpeakerRejectsSessionKey(t *testing.T) {
	p, _, _, _ := newProcessor(t)
	_, err := p.CacheFeaturedSpeaker(context.Background(), "Alice", model.NewSessionKey("u1", "c1", "s1").Encode())
	assert.Error(t, err)
}

func TestHandleDispatch(t *testing.T) {
	p, _, c, mailer := newProcessor(t)
	ctx := context.Background()

	require.NoError(t, p.Handle(ctx, NewTask(KindSendConfirmationEmail, map[string]string{
		ParamEmail:          "ada@example.com",
		ParamConferenceInfo: "PyCon",
	})))
	assert.Equal(t, "ada@example.com", mailer.to)
	assert.Equal(t, confirmationSubject, mailer.subject)
	assert.Contains(t, mailer.body, "PyCon")

	require.NoError(t, p.Handle(ctx, NewTask(KindSetFeaturedSpeaker, map[string]string{
		ParamConferenceKey: model.NewConferenceKey("u1", "c1").Encode(),
	})))
	_, ok, err := c.Get(ctx, cache.FeaturedSpeakerKey)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, p.Handle(ctx, NewTask(KindSetAnnouncement, nil)))
	assert.Error(t, p.Handle(ctx, NewTask("unknown", nil)))
}
