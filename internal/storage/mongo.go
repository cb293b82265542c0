package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	keysCollection  = "api_keys"
	usersCollection = "users"
)

type apiKeyDoc struct {
	ID   bson.ObjectID `bson:"_id,omitempty"`
	Name string        `bson:"name"`
	Key  string        `bson:"key"`
}

type userDoc struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Username string        `bson:"username"`
	Password string        `bson:"password"`
}

// MongoKeyStore is the production KeyStore, one document per API key.
type MongoKeyStore struct {
	coll *mongo.Collection
}

func NewMongoKeyStore(db *mongo.Database) *MongoKeyStore {
	return &MongoKeyStore{coll: db.Collection(keysCollection)}
}

func (s *MongoKeyStore) Insert(ctx context.Context, k APIKey) (string, error) {
	res, err := s.coll.InsertOne(ctx, apiKeyDoc{Name: k.Name, Key: k.Key})
	if err != nil {
		return "", fmt.Errorf("insert api key: %w", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert api key: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoKeyStore) All(ctx context.Context) ([]APIKey, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoKeyStore) ByID(ctx context.Context, id string) (APIKey, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return APIKey{}, ErrNotFound
	}

	var doc apiKeyDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return APIKey{}, ErrNotFound
	}
	if err != nil {
		return APIKey{}, fmt.Errorf("find api key by id: %w", err)
	}
	return doc.record(), nil
}

func (s *MongoKeyStore) ByKey(ctx context.Context, key string) (APIKey, error) {
	var doc apiKeyDoc
	err := s.coll.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return APIKey{}, ErrNotFound
	}
	if err != nil {
		return APIKey{}, fmt.Errorf("find api key by token: %w", err)
	}
	return doc.record(), nil
}

func (s *MongoKeyStore) Search(ctx context.Context, substring string) ([]APIKey, error) {
	// Substring, not pattern: quote metacharacters before handing the term
	// to the server-side regex engine.
	filter := bson.M{"name": bson.Regex{
		Pattern: regexp.QuoteMeta(substring),
		Options: "i",
	}}
	return s.find(ctx, filter)
}

func (s *MongoKeyStore) UpdateName(ctx context.Context, id, name string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return fmt.Errorf("update api key: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoKeyStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// Delete is idempotent: an id that never existed is not an error.
		return nil
	}

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	return nil
}

func (s *MongoKeyStore) find(ctx context.Context, filter bson.M) ([]APIKey, error) {
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find api keys: %w", err)
	}
	defer cur.Close(ctx)

	var docs []apiKeyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode api keys: %w", err)
	}

	keys := make([]APIKey, 0, len(docs))
	for _, d := range docs {
		keys = append(keys, d.record())
	}
	return keys, nil
}

func (d apiKeyDoc) record() APIKey {
	return APIKey{ID: d.ID.Hex(), Name: d.Name, Key: d.Key}
}

// MongoUserStore is the production UserStore.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(usersCollection)}
}

func (s *MongoUserStore) Insert(ctx context.Context, u User) (string, error) {
	res, err := s.coll.InsertOne(ctx, userDoc{Username: u.Username, Password: u.Password})
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoUserStore) All(ctx context.Context) ([]User, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.record())
	}
	return users, nil
}

func (s *MongoUserStore) ByID(ctx context.Context, id string) (User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoUserStore) ByUsername(ctx context.Context, username string) (User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *MongoUserStore) ByCredentials(ctx context.Context, username, password string) (User, error) {
	return s.findOne(ctx, bson.M{"username": username, "password": password})
}

func (s *MongoUserStore) Update(ctx context.Context, u User) error {
	oid, err := bson.ObjectIDFromHex(u.ID)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"username": u.Username,
		"password": u.Password,
	}})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.record(), nil
}

func (d userDoc) record() User {
	return User{ID: d.ID.Hex(), Username: d.Username, Password: d.Password}
}
