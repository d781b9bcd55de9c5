package ports

import (
	"context"

	"github.com/sirpyerre/people-registry/internal/core/domain"
)

// PersonInput carries a candidate person through TryAdd.
type PersonInput struct {
	ID        int
	FirstName string
	LastName  string
	Phone     string
	City      string
	Balance   float64
}

// PersonUpdate is the full proposed field set for an existing person. The id
// is supplied separately and never changes.
type PersonUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	City      string
	Balance   float64
}

// CityGroup is one bucket of the grouped report.
type CityGroup struct {
	City   string
	People []domain.Person
	Total  float64
}

type PersonService interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	GetAll(ctx context.Context) ([]domain.Person, error)
	GetByID(ctx context.Context, id int) (*domain.Person, error)
	TryAdd(ctx context.Context, in PersonInput) error
	TryUpdate(ctx context.Context, id int, upd PersonUpdate) error
	Delete(ctx context.Context, id int) error
	GroupedByCity(ctx context.Context) ([]CityGroup, error)
	TotalBalance(ctx context.Context) (float64, error)
}
