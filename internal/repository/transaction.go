package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// MongoUnitOfWork implements UnitOfWork with MongoDB multi-document
// transactions. It needs a replica set or sharded cluster.
type MongoUnitOfWork struct {
	client *mongo.Client
}

// NewMongoUnitOfWork creates a unit of work bound to the database client.
func NewMongoUnitOfWork(db *MongoDB) *MongoUnitOfWork {
	return &MongoUnitOfWork{client: db.Client}
}

// WithTransaction runs fn inside a snapshot transaction with majority
// write concern. The driver retries fn on transient transaction errors,
// so fn must re-read everything it depends on.
func (u *MongoUnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := u.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority()).
		SetReadPreference(readpref.Primary())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txnOpts)
	return err
}
