package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/people-registry/internal/core/domain"
	"github.com/sirpyerre/people-registry/internal/core/ports"
)

const defaultLoginAttempts = 3

// AuthService implements credential checks and the bounded-attempt login
// protocol with permanent lockout.
type AuthService struct {
	repo     ports.UserRepository
	audit    ports.AuditLog
	attempts int
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, audit ports.AuditLog, attempts int, logger zerolog.Logger) *AuthService {
	if attempts <= 0 {
		attempts = defaultLoginAttempts
	}
	return &AuthService{repo: repo, audit: audit, attempts: attempts, logger: logger}
}

// Authenticate resolves a username/password pair to a user. The username is
// matched case-insensitively, the password by exact equality. Blank
// credentials, unknown usernames, blocked users, and wrong passwords are all
// the same no-match outcome.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// BlockUser deactivates the credential and persists the whole credential
// file immediately, independent of the session-level save. Unknown or blank
// usernames are a no-op.
func (s *AuthService) BlockUser(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return nil
	}

	err := s.repo.SetActive(ctx, username, false)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx); err != nil {
		return fmt.Errorf("persist block: %w", err)
	}

	s.logger.Warn().Str("username", username).Msg("user blocked")
	return nil
}

// AttemptLogin drives the login protocol: up to the configured number of
// attempts, then a permanent block on the last username entered. Every
// outcome is written to the audit log. A denied login returns
// domain.ErrLoginDenied and the session must refuse all further operations.
func (s *AuthService) AttemptLogin(ctx context.Context, prompter ports.CredentialPrompter) (*domain.User, error) {
	remaining := s.attempts
	for attempt := 1; remaining > 0; attempt++ {
		creds, err := prompter.PromptCredentials(ctx, attempt, remaining)
		if err != nil {
			return nil, err
		}

		user, err := s.Authenticate(ctx, creds.Username, creds.Password)
		if err == nil {
			if aerr := s.audit.Record(creds.Username, "LOGIN", "OK"); aerr != nil {
				return nil, aerr
			}
			s.logger.Info().Str("username", user.Username).Msg("login succeeded")
			return user, nil
		}
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, err
		}

		remaining--
		if remaining > 0 {
			if aerr := s.audit.Record(creds.Username, "LOGIN", "FAILED"); aerr != nil {
				return nil, aerr
			}
			s.logger.Warn().Str("username", creds.Username).Int("remaining", remaining).Msg("login failed")
			continue
		}

		if berr := s.BlockUser(ctx, creds.Username); berr != nil {
			return nil, berr
		}
		blocked := fmt.Sprintf("FAILED_%d_TIMES_USER_BLOCKED", s.attempts)
		if aerr := s.audit.Record(creds.Username, "LOGIN", blocked); aerr != nil {
			return nil, aerr
		}
		s.logger.Warn().Str("username", creds.Username).Msg("login denied, user blocked")
	}
	return nil, domain.ErrLoginDenied
}
