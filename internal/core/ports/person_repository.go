package ports

import (
	"context"

	"github.com/sirpyerre/people-registry/internal/core/domain"
)

// PersonRepository defines the interface for people registry persistence.
// Implementations hold the collection in memory between Load and Save.
type PersonRepository interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	All(ctx context.Context) ([]domain.Person, error)
	FindByID(ctx context.Context, id int) (*domain.Person, error)
	Insert(ctx context.Context, p domain.Person) error
	Replace(ctx context.Context, p domain.Person) error
	Remove(ctx context.Context, id int) error
}
