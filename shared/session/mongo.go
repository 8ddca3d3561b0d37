package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const sessionCollection = "sessions"

type mongoSession struct {
	Token     string    `bson:"_id"`
	UserName  string    `bson:"userName"`
	ExpiresAt time.Time `bson:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore keeps sessions in the forum database. A TTL index on expiresAt
// lets the server purge old records; Get also filters on expiresAt because
// the TTL monitor only runs about once a minute.
type MongoStore struct {
	db  *mongo.Database
	now func() time.Time
}

func NewMongoStore(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) *MongoStore {
	collection := db.Collection(sessionCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session indexes")
	}

	return &MongoStore{db: db, now: time.Now}
}

func (s *MongoStore) Get(ctx context.Context, token string) (*Session, error) {
	result := s.db.Collection(sessionCollection).FindOne(ctx, bson.M{
		"_id":       token,
		"expiresAt": bson.M{"$gt": s.now()},
	})
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, result.Err()
	}

	var doc mongoSession
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	return &Session{UserName: doc.UserName}, nil
}

func (s *MongoStore) Set(ctx context.Context, token string, sess *Session, ttl time.Duration) error {
	now := s.now()
	doc := mongoSession{
		Token:     token,
		UserName:  sess.UserName,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Collection(sessionCollection).ReplaceOne(
		ctx,
		bson.M{"_id": token},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Destroy(ctx context.Context, token string) error {
	_, err := s.db.Collection(sessionCollection).DeleteOne(ctx, bson.M{"_id": token})
	return err
}
