package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"conference-central/model"
)

var mongoOperators = map[Operator]string{
	OpEq:  "$eq",
	OpGt:  "$gt",
	OpGte: "$gte",
	OpLt:  "$lt",
	OpLte: "$lte",
	OpNe:  "$ne",
}

type MongoStore struct {
	client      *mongo.Client
	profiles    *mongo.Collection
	conferences *mongo.Collection
	sessions    *mongo.Collection
	users       *mongo.Collection
}

func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{
		client:      client,
		profiles:    db.Collection(ProfilesCollection),
		conferences: db.Collection(ConferencesCollection),
		sessions:    db.Collection(SessionsCollection),
		users:       db.Collection(UsersCollection),
	}
}

func findOne(ctx context.Context, collection *mongo.Collection, filter interface{}, out interface{}) error {
	err := collection.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("server side problem occured while reading from %s: %w", collection.Name(), err)
	}
	return nil
}

func findAll[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading from %s: %w", collection.Name(), err)
	}
	defer cur.Close(ctx)

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("server side problem occured while decoding %s: %w", collection.Name(), err)
	}
	return items, nil
}

func replaceOne(ctx context.Context, collection *mongo.Collection, id string, doc interface{}, upsert bool) error {
	res, err := collection.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(upsert))
	if err != nil {
		return fmt.Errorf("server side problem occured while writing to %s: %w", collection.Name(), err)
	}
	if !upsert && res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetProfile(ctx context.Context, userId string) (*model.Profile, error) {
	var profile model.Profile
	if err := findOne(ctx, s.profiles, bson.M{"_id": userId}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *MongoStore) GetProfiles(ctx context.Context, userIds []string) (map[string]model.Profile, error) {
	out := make(map[string]model.Profile, len(userIds))
	if len(userIds) == 0 {
		return out, nil
	}
	profiles, err := findAll[model.Profile](ctx, s.profiles, bson.M{"_id": bson.M{"$in": userIds}})
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		out[p.Id] = p
	}
	return out, nil
}

func (s *MongoStore) SaveProfile(ctx context.Context, profile *model.Profile) error {
	return replaceOne(ctx, s.profiles, profile.Id, profile, true)
}

func (s *MongoStore) InsertConference(ctx context.Context, conference *model.Conference) error {
	if _, err := s.conferences.InsertOne(ctx, conference); err != nil {
		return fmt.Errorf("server side problem occured while writing conference: %w", err)
	}
	return nil
}

func (s *MongoStore) GetConference(ctx context.Context, id string) (*model.Conference, error) {
	var conference model.Conference
	if err := findOne(ctx, s.conferences, bson.M{"_id": id}, &conference); err != nil {
		return nil, err
	}
	return &conference, nil
}

func (s *MongoStore) GetConferences(ctx context.Context, ids []string) ([]model.Conference, error) {
	if len(ids) == 0 {
		return []model.Conference{}, nil
	}
	found, err := findAll[model.Conference](ctx, s.conferences, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byId := make(map[string]model.Conference, len(found))
	for _, c := range found {
		byId[c.Id] = c
	}
	out := make([]model.Conference, 0, len(ids))
	for _, id := range ids {
		if c, ok := byId[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MongoStore) SaveConference(ctx context.Context, conference *model.Conference) error {
	return replaceOne(ctx, s.conferences, conference.Id, conference, false)
}

func (s *MongoStore) QueryConferences(ctx context.Context, query ConferenceQuery) ([]model.Conference, error) {
	clauses := bson.A{}
	if query.OrganizerUserId != "" {
		clauses = append(clauses, bson.M{"organizer_user_id": query.OrganizerUserId})
	}
	for _, f := range query.Filters {
		op, ok := mongoOperators[f.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %q", f.Op)
		}
		clauses = append(clauses, bson.M{f.Field: bson.M{op: f.Value}})
	}

	filter := bson.M{}
	if len(clauses) > 0 {
		filter["$and"] = clauses
	}

	sort := bson.D{}
	for _, field := range query.OrderBy {
		sort = append(sort, bson.E{Key: field, Value: 1})
	}
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	return findAll[model.Conference](ctx, s.conferences, filter, opts)
}

func (s *MongoStore) InsertSession(ctx context.Context, session *model.Session) error {
	if _, err := s.sessions.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("server side problem occured while writing session: %w", err)
	}
	return nil
}

func (s *MongoStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	if err := findOne(ctx, s.sessions, bson.M{"_id": id}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MongoStore) GetSessions(ctx context.Context, ids []string) ([]model.Session, error) {
	if len(ids) == 0 {
		return []model.Session{}, nil
	}
	found, err := findAll[model.Session](ctx, s.sessions, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byId := make(map[string]model.Session, len(found))
	for _, sess := range found {
		byId[sess.Id] = sess
	}
	out := make([]model.Session, 0, len(ids))
	for _, id := range ids {
		if sess, ok := byId[id]; ok {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *MongoStore) QuerySessions(ctx context.Context, query SessionQuery) ([]model.Session, error) {
	filter := bson.M{}
	if query.ConferenceIds != nil {
		filter["conference_id"] = bson.M{"$in": query.ConferenceIds}
	}
	if query.Speaker != "" {
		filter["speaker"] = query.Speaker
	}
	if query.TypeOfSession != "" {
		filter["type_of_session"] = query.TypeOfSession
	}
	if query.Date != nil {
		filter["date"] = *query.Date
	}
	startTime := bson.M{}
	if query.StartTimeFrom != nil {
		startTime["$gte"] = *query.StartTimeFrom
	}
	if query.StartTimeTo != nil {
		startTime["$lte"] = *query.StartTimeTo
	}
	if query.StartTimeBefore != nil {
		startTime["$lt"] = *query.StartTimeBefore
	}
	if len(startTime) > 0 {
		filter["start_time"] = startTime
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[model.Session](ctx, s.sessions, filter, opts)
}

func (s *MongoStore) GetUserData(ctx context.Context, login string) (*model.UserData, error) {
	var user model.UserData
	if err := findOne(ctx, s.users, bson.M{"login": login}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RunInTransaction runs fn inside a multi-document transaction. The session
// context handed to fn must be used for every read and write that belongs to
// the transaction.
func (s *MongoStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("cannot start db session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
