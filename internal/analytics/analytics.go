// Package analytics keeps a running count of which account pairs a household
// moves money between. Counts are advisory; a failed write never affects the
// transfer that triggered it.
package analytics

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pairUsageCollection = "transfer_pair_usage"

type Source string

const (
	SourceCreate  Source = "create"
	SourceLink    Source = "link"
	SourceConvert Source = "convert"
)

type PairUsage struct {
	HouseholdID   uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Source        Source
	At            time.Time
}

type PairUsageRecorder interface {
	RecordPairUsage(ctx context.Context, usage PairUsage) error
}

// NoopRecorder is used when no analytics store is configured.
type NoopRecorder struct{}

func (NoopRecorder) RecordPairUsage(context.Context, PairUsage) error {
	return nil
}

// Updater is the slice of *mongo.Collection the recorder needs.
type Updater interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

type MongoRecorder struct {
	client *mongo.Client
	coll   Updater
	logger *logrus.Logger
}

// NewMongoRecorder connects to uri and verifies the connection with a ping.
func NewMongoRecorder(ctx context.Context, uri, database string, logger *logrus.Logger) (*MongoRecorder, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "analytics.Connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "analytics.Ping")
	}

	logger.WithField("database", database).Info("analytics.Connected")
	return &MongoRecorder{
		client: client,
		coll:   client.Database(database).Collection(pairUsageCollection),
		logger: logger,
	}, nil
}

// NewMongoRecorderWith builds a recorder over an existing collection.
func NewMongoRecorderWith(coll Updater, logger *logrus.Logger) *MongoRecorder {
	return &MongoRecorder{coll: coll, logger: logger}
}

// RecordPairUsage upserts one document per (household, from, to) and bumps
// its counters.
func (r *MongoRecorder) RecordPairUsage(ctx context.Context, usage PairUsage) error {
	filter := bson.M{
		"household_id":    usage.HouseholdID.String(),
		"from_account_id": usage.FromAccountID.String(),
		"to_account_id":   usage.ToAccountID.String(),
	}
	sourceKey := "sources." + string(usage.Source)
	update := bson.M{
		"$inc": bson.M{
			"count":   1,
			sourceKey: 1,
		},
		"$set": bson.M{"last_used_at": usage.At.UTC()},
		"$setOnInsert": bson.M{
			"first_used_at": usage.At.UTC(),
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, "analytics.RecordPairUsage")
	}
	return nil
}

func (r *MongoRecorder) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
