package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"conference-central/model"
)

// MemoryStore keeps every entity in process memory. Transactions are
// serialised and undo their own writes when the callback fails.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	profiles    map[string]model.Profile
	conferences map[string]model.Conference
	sessions    map[string]model.Session
	users       map[string]model.UserData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:    make(map[string]model.Profile),
		conferences: make(map[string]model.Conference),
		sessions:    make(map[string]model.Session),
		users:       make(map[string]model.UserData),
	}
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyTime(in *time.Time) *time.Time {
	if in == nil {
		return nil
	}
	t := *in
	return &t
}

func cloneProfile(p model.Profile) model.Profile {
	p.ConferenceKeysToAttend = copyStrings(p.ConferenceKeysToAttend)
	p.SessionWishlist = copyStrings(p.SessionWishlist)
	return p
}

func cloneConference(c model.Conference) model.Conference {
	c.Topics = copyStrings(c.Topics)
	c.StartDate = copyTime(c.StartDate)
	c.EndDate = copyTime(c.EndDate)
	return c
}

func cloneSession(s model.Session) model.Session {
	s.Date = copyTime(s.Date)
	s.StartTime = copyTime(s.StartTime)
	return s
}

// PutUserData registers login credentials.
func (s *MemoryStore) PutUserData(user model.UserData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Login] = user
}

func (s *MemoryStore) GetProfile(_ context.Context, userId string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userId]
	if !ok {
		return nil, ErrNotFound
	}
	p = cloneProfile(p)
	return &p, nil
}

func (s *MemoryStore) GetProfiles(_ context.Context, userIds []string) (map[string]model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]model.Profile, len(userIds))
	for _, id := range userIds {
		if p, ok := s.profiles[id]; ok {
			out[id] = cloneProfile(p)
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track(ctx, undoPut(s.profiles, profile.Id))
	s.profiles[profile.Id] = cloneProfile(*profile)
	return nil
}

func (s *MemoryStore) InsertConference(ctx context.Context, conference *model.Conference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.conferences[conference.Id]; exists {
		return fmt.Errorf("conference %s already exists", conference.Id)
	}
	s.track(ctx, undoPut(s.conferences, conference.Id))
	s.conferences[conference.Id] = cloneConference(*conference)
	return nil
}

func (s *MemoryStore) GetConference(_ context.Context, id string) (*model.Conference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conferences[id]
	if !ok {
		return nil, ErrNotFound
	}
	c = cloneConference(c)
	return &c, nil
}

func (s *MemoryStore) GetConferences(_ context.Context, ids []string) ([]model.Conference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Conference, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.conferences[id]; ok {
			out = append(out, cloneConference(c))
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveConference(ctx context.Context, conference *model.Conference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conferences[conference.Id]; !ok {
		return ErrNotFound
	}
	s.track(ctx, undoPut(s.conferences, conference.Id))
	s.conferences[conference.Id] = cloneConference(*conference)
	return nil
}

func (s *MemoryStore) QueryConferences(_ context.Context, query ConferenceQuery) ([]model.Conference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Conference{}
	for _, c := range s.conferences {
		if query.OrganizerUserId != "" && c.OrganizerUserId != query.OrganizerUserId {
			continue
		}
		matched := true
		for _, f := range query.Filters {
			ok, err := matchConference(c, f)
			if err != nil {
				return nil, err
			}
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, cloneConference(c))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, field := range query.OrderBy {
			a, _ := conferenceField(out[i], field)
			b, _ := conferenceField(out[j], field)
			if cmp := compareValues(a, b); cmp != 0 {
				return cmp < 0
			}
		}
		return out[i].Id < out[j].Id
	})
	return out, nil
}

func (s *MemoryStore) InsertSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.Id]; exists {
		return fmt.Errorf("session %s already exists", session.Id)
	}
	s.track(ctx, undoPut(s.sessions, session.Id))
	s.sessions[session.Id] = cloneSession(*session)
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess = cloneSession(sess)
	return &sess, nil
}

func (s *MemoryStore) GetSessions(_ context.Context, ids []string) ([]model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Session, 0, len(ids))
	for _, id := range ids {
		if sess, ok := s.sessions[id]; ok {
			out = append(out, cloneSession(sess))
		}
	}
	return out, nil
}

func (s *MemoryStore) QuerySessions(_ context.Context, query SessionQuery) ([]model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conferenceIds map[string]bool
	if query.ConferenceIds != nil {
		conferenceIds = make(map[string]bool, len(query.ConferenceIds))
		for _, id := range query.ConferenceIds {
			conferenceIds[id] = true
		}
	}

	out := []model.Session{}
	for _, sess := range s.sessions {
		if conferenceIds != nil && !conferenceIds[sess.ConferenceId] {
			continue
		}
		if query.Speaker != "" && sess.Speaker != query.Speaker {
			continue
		}
		if query.TypeOfSession != "" && sess.TypeOfSession != query.TypeOfSession {
			continue
		}
		if query.Date != nil && (sess.Date == nil || !sess.Date.Equal(*query.Date)) {
			continue
		}
		if !matchStartTime(sess.StartTime, query) {
			continue
		}
		out = append(out, cloneSession(sess))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Id < out[j].Id
	})
	return out, nil
}

// matchStartTime mirrors the datastore: a missing start time never satisfies
// a range constraint.
func matchStartTime(start *time.Time, query SessionQuery) bool {
	if query.StartTimeFrom == nil && query.StartTimeTo == nil && query.StartTimeBefore == nil {
		return true
	}
	if start == nil {
		return false
	}
	if query.StartTimeFrom != nil && start.Before(*query.StartTimeFrom) {
		return false
	}
	if query.StartTimeTo != nil && start.After(*query.StartTimeTo) {
		return false
	}
	if query.StartTimeBefore != nil && !start.Before(*query.StartTimeBefore) {
		return false
	}
	return true
}

func (s *MemoryStore) GetUserData(_ context.Context, login string) (*model.UserData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[login]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

type memoryTxKey struct{}

// memoryTx records how to revert every write made through its context.
type memoryTx struct {
	store *MemoryStore
	undo  []func()
}

// undoPut returns a func restoring m[id] to its current state.
func undoPut[T any](m map[string]T, id string) func() {
	prev, existed := m[id]
	return func() {
		if existed {
			m[id] = prev
		} else {
			delete(m, id)
		}
	}
}

// track must be called with s.mu held, before the write.
func (s *MemoryStore) track(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok && tx.store == s {
		tx.undo = append(tx.undo, undo)
	}
}

// RunInTransaction serialises transactions against each other. When fn fails
// only the writes made through its context are reverted; concurrent writes
// outside the transaction survive.
func (s *MemoryStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &memoryTx{store: s}
	if err := fn(context.WithValue(ctx, memoryTxKey{}, tx)); err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

func conferenceField(c model.Conference, field string) (interface{}, error) {
	switch field {
	case FieldName:
		return c.Name, nil
	case FieldCity:
		return c.City, nil
	case FieldTopics:
		return c.Topics, nil
	case FieldMonth:
		return c.Month, nil
	case FieldMaxAttendees:
		return c.MaxAttendees, nil
	case FieldSeatsAvailable:
		return c.SeatsAvailable, nil
	}
	return nil, fmt.Errorf("unknown conference field %q", field)
}

// matchConference follows MongoDB semantics for array fields: $ne holds when
// no element equals the value, every other operator when any element matches.
func matchConference(c model.Conference, f Filter) (bool, error) {
	value, err := conferenceField(c, f.Field)
	if err != nil {
		return false, err
	}
	if list, ok := value.([]string); ok {
		if f.Op == OpNe {
			for _, item := range list {
				if compareValues(item, f.Value) == 0 {
					return false, nil
				}
			}
			return true, nil
		}
		for _, item := range list {
			if ok, err := applyOperator(item, f.Op, f.Value); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
	return applyOperator(value, f.Op, f.Value)
}

func applyOperator(value interface{}, op Operator, operand interface{}) (bool, error) {
	cmp := compareValues(value, operand)
	switch op {
	case OpEq:
		return cmp == 0, nil
	case OpNe:
		return cmp != 0, nil
	case OpGt:
		return cmp > 0, nil
	case OpGte:
		return cmp >= 0, nil
	case OpLt:
		return cmp < 0, nil
	case OpLte:
		return cmp <= 0, nil
	}
	return false, fmt.Errorf("unsupported operator %q", op)
}

// compareValues orders ints and strings; values of different types compare
// by type name so the ordering stays total.
func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case int:
		if bv, ok := b.(int); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	ta, tb := fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)
	switch {
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	}
	return 0
}
