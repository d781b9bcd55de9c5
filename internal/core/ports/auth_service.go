package ports

import (
	"context"

	"github.com/sirpyerre/people-registry/internal/core/domain"
)

// Credentials is one username/password pair collected from the operator.
type Credentials struct {
	Username string
	Password string
}

// CredentialPrompter collects credentials for a single login attempt. The
// presentation layer owns prompting, remaining-attempt display, and any
// retry delay. attempt counts from 1; remaining includes the current attempt.
type CredentialPrompter interface {
	PromptCredentials(ctx context.Context, attempt, remaining int) (Credentials, error)
}

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	BlockUser(ctx context.Context, username string) error
	AttemptLogin(ctx context.Context, prompter CredentialPrompter) (*domain.User, error)
}
