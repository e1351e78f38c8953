package storage

import (
	"context"
	"time"

	"github.com/crude-signals/crude/model"
	"github.com/mongodb/anser/bsonutil"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	pricesCollection = "prices"
	eventsCollection = "events"

	defaultMongoURI        = "mongodb://localhost:27017"
	defaultDatabaseName    = "crude"
	defaultMongoTimeout    = 10 * time.Second
	defaultMongoWriteBatch = 1000
)

// priceDocument keeps the row's position in the imported series so
// observations sharing a date come back in their original order.
type priceDocument struct {
	model.PricePoint `bson:",inline"`
	Ordinal          int `bson:"ordinal"`
}

var (
	priceDateKey    = bsonutil.MustHaveTag(model.PricePoint{}, "Date")
	priceOrdinalKey = bsonutil.MustHaveTag(priceDocument{}, "Ordinal")
	eventDateKey    = bsonutil.MustHaveTag(model.Event{}, "Date")
	eventNameKey    = bsonutil.MustHaveTag(model.Event{}, "Name")
)

// MongoOptions locates the prices and events collections.
type MongoOptions struct {
	URI      string        `yaml:"uri"`
	Database string        `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

func (o *MongoOptions) Validate() error {
	if o.URI == "" {
		o.URI = defaultMongoURI
	}
	if o.Database == "" {
		o.Database = defaultDatabaseName
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultMongoTimeout
	}
	return nil
}

// MongoSource stores one document per price observation and one per
// event.
type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoSource connects to the database and ensures the date indexes
// exist.
func NewMongoSource(ctx context.Context, opts MongoOptions) (*MongoSource, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(opts.Timeout).
		SetServerSelectionTimeout(opts.Timeout))
	if err != nil {
		return nil, errors.Wrap(err, "problem connecting to the database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		grip.Warning(message.WrapError(client.Disconnect(ctx), message.Fields{
			"message": "problem disconnecting after failed ping",
		}))
		return nil, errors.Wrap(err, "problem reaching the database")
	}

	s := &MongoSource{client: client, db: client.Database(opts.Database)}
	if err = s.ensureIndexes(ctx); err != nil {
		catcher := grip.NewBasicCatcher()
		catcher.Add(err)
		catcher.Add(client.Disconnect(ctx))
		return nil, catcher.Resolve()
	}

	return s, nil
}

func (s *MongoSource) Type() SourceType { return SourceMongoDB }

func (s *MongoSource) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(pricesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: priceDateKey, Value: 1}, {Key: priceOrdinalKey, Value: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "problem creating price index")
	}

	_, err = s.db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: eventDateKey, Value: 1}, {Key: eventNameKey, Value: 1}},
	})
	return errors.Wrap(err, "problem creating event index")
}

func (s *MongoSource) Prices(ctx context.Context) (model.PriceSeries, error) {
	cur, err := s.db.Collection(pricesCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: priceDateKey, Value: 1}, {Key: priceOrdinalKey, Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "problem finding prices")
	}

	docs := []priceDocument{}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "problem decoding prices")
	}

	out := make(model.PriceSeries, len(docs))
	for idx := range docs {
		out[idx] = docs[idx].PricePoint
	}

	return out, nil
}

func (s *MongoSource) Events(ctx context.Context) ([]model.Event, error) {
	cur, err := s.db.Collection(eventsCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: eventDateKey, Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "problem finding events")
	}

	out := []model.Event{}
	if err = cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "problem decoding events")
	}

	return out, nil
}

// SavePrices replaces the stored series with a snapshot of the given
// one. Rows sharing a date are all kept.
func (s *MongoSource) SavePrices(ctx context.Context, series model.PriceSeries) error {
	if _, err := s.db.Collection(pricesCollection).DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrap(err, "problem clearing prices")
	}

	inserts := make([]mongo.WriteModel, 0, len(series))
	for idx, p := range series {
		inserts = append(inserts, mongo.NewInsertOneModel().
			SetDocument(priceDocument{PricePoint: p, Ordinal: idx}))
	}

	return errors.Wrap(s.bulkWrite(ctx, pricesCollection, inserts), "problem saving prices")
}

// SaveEvents upserts one document per event, keyed by date and name.
func (s *MongoSource) SaveEvents(ctx context.Context, events []model.Event) error {
	updates := make([]mongo.WriteModel, 0, len(events))
	for _, e := range events {
		updates = append(updates, mongo.NewReplaceOneModel().
			SetFilter(bson.M{eventDateKey: e.Date, eventNameKey: e.Name}).
			SetReplacement(e).
			SetUpsert(true))
	}

	return errors.Wrap(s.bulkWrite(ctx, eventsCollection, updates), "problem saving events")
}

func (s *MongoSource) bulkWrite(ctx context.Context, collection string, updates []mongo.WriteModel) error {
	var inserted, upserted, modified int64
	for start := 0; start < len(updates); start += defaultMongoWriteBatch {
		end := start + defaultMongoWriteBatch
		if end > len(updates) {
			end = len(updates)
		}

		res, err := s.db.Collection(collection).BulkWrite(ctx, updates[start:end], options.BulkWrite().SetOrdered(false))
		if err != nil {
			return errors.WithStack(err)
		}
		inserted += res.InsertedCount
		upserted += res.UpsertedCount
		modified += res.ModifiedCount
	}

	grip.Debug(message.Fields{
		"message":    "saved documents",
		"collection": collection,
		"documents":  len(updates),
		"inserted":   inserted,
		"upserted":   upserted,
		"modified":   modified,
	})

	return nil
}

func (s *MongoSource) Close(ctx context.Context) error {
	return errors.Wrap(s.client.Disconnect(ctx), "problem disconnecting from the database")
}

// DropAll removes both collections.
func (s *MongoSource) DropAll(ctx context.Context) error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(s.db.Collection(pricesCollection).Drop(ctx))
	catcher.Add(s.db.Collection(eventsCollection).Drop(ctx))
	return catcher.Resolve()
}
