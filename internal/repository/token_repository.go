package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TokenRepository stores refresh tokens and revoked access tokens. Only the
// SHA-256 digest of a token is persisted; lookups hash the presented token.
type TokenRepository struct {
	collection *mongo.Collection
}

func NewTokenRepository(db *MongoDB) *TokenRepository {
	return &TokenRepository{collection: db.Tokens}
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Create stores token under its digest. token.ID and token.CreatedAt are
// filled in; token.Token is left as given. A repeated token is ErrDuplicateKey.
func (r *TokenRepository) Create(ctx context.Context, token *model.Token) error {
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	token.CreatedAt = time.Now().UTC()

	stored := *token
	stored.Token = tokenDigest(token.Token)
	_, err := r.collection.InsertOne(ctx, &stored)
	return translateWriteError(err)
}

// FindByToken returns the stored record, whose Token field holds the digest,
// or nil when the token is unknown.
func (r *TokenRepository) FindByToken(ctx context.Context, tokenString string) (*model.Token, error) {
	return findOne[model.Token](ctx, r.collection, bson.M{"token": tokenDigest(tokenString)})
}

// DeleteByToken is a no-op for an unknown token.
func (r *TokenRepository) DeleteByToken(ctx context.Context, tokenString string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"token": tokenDigest(tokenString)})
	return err
}

// DeleteByUserID removes every token of tokenType held by the user.
func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID, "type": tokenType})
	return err
}

// IsBlacklisted reports whether the access token was revoked at logout.
func (r *TokenRepository) IsBlacklisted(ctx context.Context, tokenString string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx,
		bson.M{"token": tokenDigest(tokenString), "type": model.TokenTypeBlacklist},
		options.Count().SetLimit(1))
	return n > 0, err
}
