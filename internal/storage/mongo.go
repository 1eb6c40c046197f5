package storage

import (
	"context"
	"time"

	"github.com/formpulse/survey-intake-backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "submissions"

// MongoStore implements the Store contract on a MongoDB collection.
// Dedupe is a filtered count on the key fields rather than a client-side
// scan; iteration follows the collection's natural (insertion) order.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB deployment at uri and verifies
// the connection before returning.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(dbName).Collection(mongoCollection),
	}, nil
}

func (s *MongoStore) AppendIfNew(ctx context.Context, rec *models.StorageRecord) (bool, error) {
	filter := bson.M{
		"submission_id": rec.SubmissionID,
		"email":         rec.Email,
		"age":           rec.Age,
		"name":          rec.Name,
		"consent":       rec.Consent,
		"rating":        rec.Rating,
		"comments":      rec.Comments,
		"source":        rec.Source,
	}

	count, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, errors.Wrap(err, "scan for duplicate")
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return false, errors.Wrap(err, "append record")
	}
	return true, nil
}

func (s *MongoStore) Each(ctx context.Context, fn func(*models.StorageRecord) error) error {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return errors.Wrap(err, "read submissions")
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var rec models.StorageRecord
		if err := cursor.Decode(&rec); err != nil {
			return errors.Wrap(err, "decode record")
		}
		if err := fn(&rec); err != nil {
			return err
		}
	}
	return errors.Wrap(cursor.Err(), "iterate submissions")
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.client.Disconnect(ctx)
}
