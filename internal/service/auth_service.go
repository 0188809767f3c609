package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"socialforum/internal/models"
	"socialforum/internal/repository"
)

type SignupInput struct {
	Username string
	Password string
	Email    string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) error
	// Signin returns a bearer token for the user.
	Signin(ctx context.Context, username, password string) (string, error)
	Signout(ctx context.Context, token string) error
	// Authenticate returns the username a live token belongs to.
	Authenticate(ctx context.Context, token string) (string, error)
}

type authService struct {
	repo   *repository.Repository
	tx     repository.Transactor
	creds  CredentialService
	tokens TokenService
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tx repository.Transactor, creds CredentialService, tokens TokenService, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tx:     tx,
		creds:  creds,
		tokens: tokens,
		log:    log,
	}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) error {
	username, err := cleanText("username", in.Username)
	if err != nil {
		return err
	}
	// Signin matches the username verbatim, so it must survive sanitizing unchanged.
	if username != strings.TrimSpace(in.Username) {
		return withDetail(ErrValidationFailed, "username must not contain markup")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return withDetail(ErrValidationFailed, "email must not be empty")
	}
	if in.Password == "" {
		return withDetail(ErrValidationFailed, "password must not be empty")
	}

	digest, err := s.creds.Hash(in.Password)
	if err != nil {
		return err
	}

	err = inTx(ctx, s.tx, func(repo *repository.Repository) error {
		exists, err := repo.User.ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return err
		}
		if exists {
			return withDetail(ErrConflict, msgSignupConflict)
		}

		return repo.User.Create(ctx, &models.User{
			Username: username,
			Password: digest,
			Email:    email,
			IsActive: true,
		})
	})
	if errors.Is(err, repository.ErrUniqueViolation) {
		return withDetail(ErrConflict, msgSignupConflict)
	}
	if err != nil {
		return err
	}

	s.log.Info("user signed up", zap.String("username", username))
	return nil
}

// Signin reports an unknown user, a wrong password and an inactive account identically.
func (s *authService) Signin(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.User.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	if user == nil || !user.IsActive || !s.creds.Verify(password, user.Password) {
		s.log.Debug("signin rejected", zap.String("username", username))
		return "", withDetail(ErrInvalidCredentials, msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *authService) Signout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return fmt.Errorf("signout: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", withDetail(ErrUnauthenticated, "Not authenticated")
	}
	return s.tokens.Verify(ctx, token)
}
