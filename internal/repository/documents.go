package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOne decodes the first document matching filter, or returns nil when none does.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// findAll decodes every document matching filter. It never returns a nil slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := make([]*T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// replaceVersioned replaces the document with the given id only if its stored
// version still equals expected.
func replaceVersioned(ctx context.Context, coll *mongo.Collection, id string, expected int64, doc interface{}) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id, "version": expected}, doc)
	if err != nil {
		return translateWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
