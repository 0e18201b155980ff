// Package repository stores the flock service's documents in MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig tunes the driver's connection pool and timeouts.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// EnableCompression negotiates zstd, snappy or zlib on the wire.
	EnableCompression bool
}

// DefaultMongoConfig returns the pool settings used in production.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB holds the client and one handle per collection.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database

	Farms        *mongo.Collection
	Batches      *mongo.Collection
	Houses       *mongo.Collection
	Allocations  *mongo.Collection
	Stocks       *mongo.Collection
	Productions  *mongo.Collection
	FeedFormulas *mongo.Collection

	Logs        *mongo.Collection
	Users       *mongo.Collection
	Roles       *mongo.Collection
	Permissions *mongo.Collection
	Tokens      *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and ensures every index exists.
// Allocation transactions need a replica set or sharded cluster.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:       client,
		Database:     db,
		Farms:        db.Collection("farms"),
		Batches:      db.Collection("batches"),
		Houses:       db.Collection("houses"),
		Allocations:  db.Collection("allocations"),
		Stocks:       db.Collection("stocks"),
		Productions:  db.Collection("productions"),
		FeedFormulas: db.Collection("feed_formulas"),
		Logs:         db.Collection("logs"),
		Users:        db.Collection("users"),
		Roles:        db.Collection("roles"),
		Permissions:  db.Collection("permissions"),
		Tokens:       db.Collection("tokens"),
	}

	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return m, nil
}

type collectionIndex struct {
	coll  *mongo.Collection
	model mongo.IndexModel
	// required indexes back an invariant; failing to build one is fatal.
	required bool
}

func keys(fields ...string) bson.D {
	d := make(bson.D, 0, len(fields))
	for _, f := range fields {
		order := 1
		if f[0] == '-' {
			f, order = f[1:], -1
		}
		d = append(d, bson.E{Key: f, Value: order})
	}
	return d
}

func unique() *options.IndexOptions { return options.Index().SetUnique(true) }

func (m *MongoDB) indexes() []collectionIndex {
	return []collectionIndex{
		// One allocation per (batch, house); concurrent creators race on it.
		{m.Allocations, mongo.IndexModel{Keys: keys("batch_id", "house_id"), Options: unique()}, true},
		{m.Allocations, mongo.IndexModel{Keys: keys("house_id")}, false},

		{m.Farms, mongo.IndexModel{Keys: keys("owner_id"), Options: unique()}, true},
		{m.Batches, mongo.IndexModel{Keys: keys("farm_id", "-arrival_date")}, false},
		{m.Houses, mongo.IndexModel{Keys: keys("farm_id", "name")}, false},
		{m.Stocks, mongo.IndexModel{Keys: keys("farm_id", "-created_at")}, false},
		{m.Productions, mongo.IndexModel{Keys: keys("farm_id", "-date")}, false},
		{m.FeedFormulas, mongo.IndexModel{Keys: keys("farm_id", "is_active")}, false},

		{m.Logs, mongo.IndexModel{Keys: keys("request_id")}, false},
		{m.Logs, mongo.IndexModel{Keys: keys("farm_id", "-timestamp")}, false},

		{m.Users, mongo.IndexModel{Keys: keys("email"), Options: unique()}, true},
		{m.Users, mongo.IndexModel{Keys: keys("username"), Options: unique()}, true},
		{m.Roles, mongo.IndexModel{Keys: keys("name"), Options: unique()}, true},
		{m.Permissions, mongo.IndexModel{Keys: keys("resource", "action"), Options: unique()}, true},
		{m.Tokens, mongo.IndexModel{Keys: keys("token"), Options: unique()}, true},
		{m.Tokens, mongo.IndexModel{Keys: keys("user_id", "type")}, false},
		// expires_at holds the deletion time itself.
		{m.Tokens, mongo.IndexModel{Keys: keys("expires_at"), Options: options.Index().SetExpireAfterSeconds(0)}, false},
	}
}

// createIndexes builds every index. Lookup indexes are best effort.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	for _, idx := range m.indexes() {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil && idx.required {
			return fmt.Errorf("%s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

const (
	logsTTLIndex              = "timestamp_1"
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

// SetLogsTTL expires log entries ttl after their timestamp. An existing TTL
// index with another expiry is changed in place.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	seconds := int32(ttl / time.Second)
	if seconds <= 0 {
		return fmt.Errorf("logs ttl must be at least one second, got %s", ttl)
	}

	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys("timestamp"),
		Options: options.Index().SetName(logsTTLIndex).SetExpireAfterSeconds(seconds),
	})
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || (cmdErr.Code != codeIndexOptionsConflict && cmdErr.Code != codeIndexKeySpecsConflict) {
		return err
	}

	return m.Database.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: m.Logs.Name()},
		{Key: "index", Value: bson.D{
			{Key: "name", Value: logsTTLIndex},
			{Key: "expireAfterSeconds", Value: seconds},
		}},
	}).Err()
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary within two seconds.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
