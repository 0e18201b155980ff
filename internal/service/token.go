package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenService issues, verifies and revokes JWTs. Refresh tokens are stored
// so they can be rotated; revoked access tokens are stored until they expire.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, user *model.User) (*dto.TokenPair, error)
	ValidateAccessToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	// ValidateRefreshToken checks the signature and the stored record, and
	// returns the claims of a refresh token that can still be used.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	InvalidateAccessToken(ctx context.Context, tokenString string) error
	InvalidateUserTokens(ctx context.Context, userID primitive.ObjectID) error
	DeleteRefreshToken(ctx context.Context, tokenString string) error
}

// signedClaims is the JWT payload: the caller's claims plus the registered ones.
type signedClaims struct {
	dto.Claims
	jwt.RegisteredClaims
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

type tokenService struct {
	access  signingKey
	refresh signingKey
	tokens  repository.TokenRepositoryInterface
	now     func() time.Time
}

// NewTokenService creates a token service from the JWT settings.
func NewTokenService(tokens repository.TokenRepositoryInterface, cfg config.AuthConfig) TokenService {
	return &tokenService{
		access:  signingKey{secret: []byte(cfg.JWTSecretKey), ttl: cfg.AccessTokenTTL},
		refresh: signingKey{secret: []byte(cfg.JWTRefreshSecret), ttl: cfg.RefreshTokenTTL},
		tokens:  tokens,
		now:     time.Now,
	}
}

func (s *tokenService) GenerateTokenPair(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	if user.ID.IsZero() {
		return nil, errors.New("cannot issue tokens for a user without an id")
	}

	accessToken, _, err := s.sign(user, s.access)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, refreshExpiry, err := s.sign(user, s.refresh)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.tokens.Create(ctx, &model.Token{
		UserID:    user.ID,
		Token:     refreshToken,
		Type:      model.TokenTypeRefresh,
		ExpiresAt: refreshExpiry,
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.access.ttl.Seconds()),
	}, nil
}

func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	revoked, err := s.tokens.IsBlacklisted(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenBlacklisted
	}

	claims, err := s.parse(tokenString, s.access)
	if err != nil {
		return nil, err
	}
	return &claims.Claims, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	claims, err := s.parse(tokenString, s.refresh)
	if err != nil {
		return nil, err
	}

	stored, err := s.tokens.FindByToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.Type != model.TokenTypeRefresh || stored.Expired(s.now()) {
		return nil, ErrInvalidToken
	}
	return &claims.Claims, nil
}

// InvalidateAccessToken stores the token as revoked until its own expiry.
func (s *tokenService) InvalidateAccessToken(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString, s.access)
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.access.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	err = s.tokens.Create(ctx, &model.Token{
		UserID:    claims.UserID,
		Token:     tokenString,
		Type:      model.TokenTypeBlacklist,
		ExpiresAt: expiresAt,
	})
	if errors.Is(err, repository.ErrDuplicateKey) {
		return nil
	}
	return err
}

func (s *tokenService) InvalidateUserTokens(ctx context.Context, userID primitive.ObjectID) error {
	return s.tokens.DeleteByUserID(ctx, userID, model.TokenTypeRefresh)
}

func (s *tokenService) DeleteRefreshToken(ctx context.Context, tokenString string) error {
	return s.tokens.DeleteByToken(ctx, tokenString)
}

// sign issues a token for user. Every token gets a unique id, so two tokens
// issued within the same second still differ.
func (s *tokenService) sign(user *model.User, key signingKey) (string, time.Time, error) {
	issued := s.now()
	expires := issued.Add(key.ttl)

	claims := signedClaims{
		Claims: dto.Claims{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Roles:  user.Roles,
			FarmID: user.FarmID,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// parse verifies the signature and the time claims. Any failure is ErrInvalidToken.
func (s *tokenService) parse(tokenString string, key signingKey) (*signedClaims, error) {
	claims := &signedClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return key.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
