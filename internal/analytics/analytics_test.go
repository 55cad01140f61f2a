package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeUpdater struct {
	filter interface{}
	update interface{}
	opts   []*options.UpdateOptions
	err    error
}

func (f *fakeUpdater) UpdateOne(_ context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.filter, f.update, f.opts = filter, update, opts
	if f.err != nil {
		return nil, f.err
	}
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func TestRecordPairUsage_Upserts(t *testing.T) {
	logger, _ := test.NewNullLogger()
	coll := &fakeUpdater{}
	r := NewMongoRecorderWith(coll, logger)

	usage := PairUsage{
		HouseholdID:   uuid.Must(uuid.NewV4()),
		FromAccountID: uuid.Must(uuid.NewV4()),
		ToAccountID:   uuid.Must(uuid.NewV4()),
		Source:        SourceLink,
		At:            time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, r.RecordPairUsage(context.Background(), usage))

	assert.Equal(t, bson.M{
		"household_id":    usage.HouseholdID.String(),
		"from_account_id": usage.FromAccountID.String(),
		"to_account_id":   usage.ToAccountID.String(),
	}, coll.filter)

	update := coll.update.(bson.M)
	assert.Equal(t, bson.M{"count": 1, "sources.link": 1}, update["$inc"])
	assert.Equal(t, bson.M{"last_used_at": usage.At}, update["$set"])

	require.Len(t, coll.opts, 1)
	require.NotNil(t, coll.opts[0].Upsert)
	assert.True(t, *coll.opts[0].Upsert)
}

func TestRecordPairUsage_WrapsError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := NewMongoRecorderWith(&fakeUpdater{err: errors.New("no primary")}, logger)

	err := r.RecordPairUsage(context.Background(), PairUsage{Source: SourceCreate})
	assert.ErrorContains(t, err, "no primary")
}

func TestNoopRecorder(t *testing.T) {
	var r PairUsageRecorder = NoopRecorder{}
	assert.NoError(t, r.RecordPairUsage(context.Background(), PairUsage{}))
}

func TestClose_WithoutClient(t *testing.T) {
	logger, _ := test.NewNullLogger()
	assert.NoError(t, NewMongoRecorderWith(&fakeUpdater{}, logger).Close(context.Background()))
}
