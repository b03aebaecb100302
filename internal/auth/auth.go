package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/logger"
)

const minPasswordLen = 8

// UserStore is the slice of the persistence layer auth needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenRevoker records signed-out tokens. A nil revoker makes signout
// stateless (tokens simply age out).
type TokenRevoker interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Service implements email/password authentication with HS256 access
// tokens. The rest of the system only ever sees the opaque user id and
// email it asserts.
type Service struct {
	secret  []byte
	ttl     time.Duration
	store   UserStore
	revoker TokenRevoker
	log     logger.Logger
}

func NewService(secret string, ttl time.Duration, store UserStore, revoker TokenRevoker, log logger.Logger) (*Service, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		store:   store,
		revoker: revoker,
		log:     log,
	}, nil
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignUp registers a new user and returns it with a fresh token.
func (s *Service) SignUp(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return domain.User{}, "", fmt.Errorf("%w: malformed email", domain.ErrInvalidCredentials)
	}
	if len(password) < minPasswordLen {
		return domain.User{}, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidCredentials, minPasswordLen)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, email, hash)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}

	s.log.Info("user signed up", logger.String("user_id", user.ID))
	return user, token, nil
}

// SignIn authenticates an existing user and returns a fresh token.
// Unknown emails and wrong passwords are indistinguishable to the
// caller: both yield ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, "", err
	}

	ok, err := verifyPassword(user.PasswordHash, password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}

	s.log.Info("user signed in", logger.String("user_id", user.ID))
	return user, token, nil
}

// SignOut revokes the token for the remainder of its lifetime.
// Without a revoker it is a no-op (stateless tokens).
func (s *Service) SignOut(ctx context.Context, tokenString string) error {
	c, err := s.parseToken(tokenString)
	if err != nil {
		return domain.ErrInvalidCredentials
	}

	if s.revoker == nil || c.ID == "" {
		return nil
	}

	remaining := time.Until(c.ExpiresAt.Time)
	if err := s.revoker.RevokeToken(ctx, c.ID, remaining); err != nil {
		// Best effort: the token still ages out on its own.
		s.log.Warn("token revocation failed", logger.Error(err))
	}
	return nil
}

// Verify checks a token and returns the user identity it asserts.
func (s *Service) Verify(ctx context.Context, tokenString string) (domain.User, error) {
	c, err := s.parseToken(tokenString)
	if err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	if s.revoker != nil && c.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, c.ID)
		if err != nil {
			s.log.Warn("revocation check failed, accepting token", logger.Error(err))
		} else if revoked {
			return domain.User{}, domain.ErrInvalidCredentials
		}
	}

	return domain.User{ID: c.Subject, Email: c.Email}, nil
}

func (s *Service) issueToken(user domain.User) (string, error) {
	now := time.Now()
	c := claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			Issuer:    "linksaver",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *Service) parseToken(tokenString string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return c, nil
}

// ExtractToken pulls the bearer token out of an Authorization header.
func ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("empty authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty token")
	}
	return token, nil
}
