package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/logger"
	"github.com/guttosm/flock-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown email, a wrong password
	// or a deactivated account alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists is returned when the email or username is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidToken is returned when a token is malformed, expired or unknown.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenBlacklisted is returned for an access token revoked by logout.
	ErrTokenBlacklisted = errors.New("token is blacklisted")
)

// dummyHash is compared against when the user does not exist, so unknown
// emails take as long to reject as wrong passwords.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("flock-service"), bcrypt.DefaultCost)
	return hash
})

// AuthService provides authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error)
	Register(ctx context.Context, email, username, password, name string) (*dto.TokenPair, *model.User, error)
	// RefreshToken rotates a refresh token: the old one stops working.
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	// ReissueTokens replaces the user's refresh tokens with a fresh pair whose
	// claims reflect the stored user, e.g. after joining a farm.
	ReissueTokens(ctx context.Context, userID primitive.ObjectID) (*dto.TokenPair, error)
}

type authService struct {
	users  repository.UserRepositoryInterface
	roles  repository.RoleRepositoryInterface
	tokens TokenService
}

// NewAuthService creates the authentication service.
func NewAuthService(
	users repository.UserRepositoryInterface,
	roles repository.RoleRepositoryInterface,
	tokens repository.TokenRepositoryInterface,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		users:  users,
		roles:  roles,
		tokens: NewTokenService(tokens, cfg),
	}
}

// Login checks the password and starts a new session. Earlier refresh tokens
// of the user are revoked.
func (s *authService) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error) {
	user, err := s.users.FindByEmailForAuth(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil || !user.Active {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Component("auth")
	log.Info().Str("user_id", user.ID.Hex()).Msg("User logged in")
	return pair, user, nil
}

// Register creates an active user with the default role and signs them in.
// The new user has no farm yet.
func (s *authService) Register(ctx context.Context, email, username, password, name string) (*dto.TokenPair, *model.User, error) {
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, ErrUserExists
	}
	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, ErrUserExists
	}

	role, err := s.roles.FindByName(ctx, model.DefaultRoleName)
	if err != nil {
		return nil, nil, err
	}
	if role == nil {
		return nil, nil, fmt.Errorf("default role %q is missing", model.DefaultRoleName)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:    email,
		Username: username,
		Password: string(hash),
		Name:     name,
		Roles:    []string{role.ID.Hex()},
		Active:   true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, nil, ErrUserExists
		}
		return nil, nil, err
	}

	pair, err := s.tokens.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Component("auth")
	log.Info().Str("user_id", user.ID.Hex()).Msg("User registered")
	return pair, user, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("delete used refresh token: %w", err)
	}
	return s.tokens.GenerateTokenPair(ctx, user)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokens.ValidateAccessToken(ctx, tokenString)
}

// Logout revokes whichever of the two tokens is given. Both are attempted
// even if the first fails.
func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	var errs []error
	if accessToken != "" {
		if err := s.tokens.InvalidateAccessToken(ctx, accessToken); err != nil {
			errs = append(errs, fmt.Errorf("revoke access token: %w", err))
		}
	}
	if refreshToken != "" {
		if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
			errs = append(errs, fmt.Errorf("delete refresh token: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *authService) ReissueTokens(ctx context.Context, userID primitive.ObjectID) (*dto.TokenPair, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, user)
}

func (s *authService) startSession(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	if err := s.tokens.InvalidateUserTokens(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("revoke previous refresh tokens: %w", err)
	}
	return s.tokens.GenerateTokenPair(ctx, user)
}

func (s *authService) activeUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
