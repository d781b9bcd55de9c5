package ports

import (
	"context"

	"github.com/sirpyerre/people-registry/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
type UserRepository interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	All(ctx context.Context) ([]domain.User, error)
	// FindByUsername matches case-insensitively; the first match wins.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// SetActive flips the active flag in memory only. Callers that need the
	// change on disk follow up with Save.
	SetActive(ctx context.Context, username string, active bool) error
}
