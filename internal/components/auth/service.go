package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aicraft/storycraft/internal/shared/token"
)

// bcryptCost is the adaptive hashing cost factor for new credentials.
const bcryptCost = 10

var (
	// ErrInvalidCredentials covers both unknown identifier and wrong secret.
	// Login never distinguishes the two, to prevent identifier enumeration.
	ErrInvalidCredentials = errors.New("invalid identifier or secret")

	ErrMissingFields = errors.New("identifier and secret are required")
)

type (
	servicer interface {
		Signup(ctx context.Context, identifier, secret string) error
		Login(ctx context.Context, identifier, secret string) (string, error)
	}

	service struct {
		repo   repoer
		tokens *token.Manager
		logger zerolog.Logger
	}
)

func NewService(repo repoer, tokens *token.Manager, logger zerolog.Logger) servicer {
	return &service{
		repo:   repo,
		tokens: tokens,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Signup hashes the secret and stores a new credential. It issues no token;
// the caller must log in separately.
func (s *service) Signup(ctx context.Context, identifier, secret string) error {
	if strings.TrimSpace(identifier) == "" || secret == "" {
		return ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return err
	}

	if _, err := s.repo.Insert(ctx, identifier, string(hash)); err != nil {
		return err
	}

	s.logger.Debug().Str("identifier", identifier).Msg("Credential created")
	return nil
}

// Login verifies the secret against the stored hash and issues a session
// token for the credential's subject ID.
func (s *service) Login(ctx context.Context, identifier, secret string) (string, error) {
	cred, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(secret)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(cred.ID.String())
}
