package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/cenkalti/backoff/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection     = "users"
	passwordsCollection = "passwords"

	mongoPingTimeout = 5 * time.Second
)

// Mongo holds the client and database of the MongoDB backend.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnectMongo connects to cfg.Mongo.URI, waits for the primary with
// exponential backoff and ensures the collection indexes exist.
func NewConnectMongo(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting to mongo")
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	ping := func() (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, mongoPingTimeout)
		defer cancel()
		return struct{}{}, client.Ping(pingCtx, readpref.Primary())
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(defaultBackOff()),
		backoff.WithMaxTries(maxRetryAttempts),
	}
	if cfg.RetryMaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(cfg.RetryMaxElapsed))
	}
	if _, err = backoff.Retry(ctx, ping, opts...); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting to mongo (ping)")
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error pinging mongo: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(cfg.Mongo.Database)}
	if err = m.ensureIndexes(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error creating indexes")
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Info().Str("func", "NewConnectMongo").Str("database", cfg.Mongo.Database).Msg("connected to mongo successfully")
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("error creating users indexes: %w", err)
	}

	_, err = m.passwords().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("error creating passwords indexes: %w", err)
	}

	return nil
}

func (m *Mongo) users() *mongo.Collection {
	return m.db.Collection(usersCollection)
}

func (m *Mongo) passwords() *mongo.Collection {
	return m.db.Collection(passwordsCollection)
}

// Ping checks that the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
