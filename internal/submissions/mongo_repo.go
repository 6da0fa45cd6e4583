package submissions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultDatabase       = "VISAWISE"
	contactsCollection    = "CONTACTS"
	subscribersCollection = "SUBSCRIBERS"

	connectTimeout = 10 * time.Second
)

type MongoRepo struct {
	db *mongo.Database
}

// NewMongoClient connects and pings, so a bad URI fails at startup rather than
// on the first submission.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("mongo uri not set")
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetAppName("workoutlog"),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		if discErr := client.Disconnect(ctx); discErr != nil {
			log.Errorf("mongo disconnect after failed ping: %s", discErr)
		}
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

func NewMongoRepo(client *mongo.Client, dbName string) *MongoRepo {
	if dbName == "" {
		dbName = DefaultDatabase
	}
	return &MongoRepo{
		db: client.Database(dbName),
	}
}

func (r *MongoRepo) InsertContact(ctx context.Context, record ContactRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongoRepo.insertContact")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Collection(contactsCollection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *MongoRepo) SubscriberExists(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongoRepo.subscriberExists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var existing SubscriberRecord
	err = r.db.Collection(subscribersCollection).
		FindOne(ctx, bson.M{"email": email}).
		Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find subscriber: %w", err)
	}
	return true, nil
}

func (r *MongoRepo) InsertSubscriber(ctx context.Context, record SubscriberRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongoRepo.insertSubscriber")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Collection(subscribersCollection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}
