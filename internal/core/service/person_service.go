package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/people-registry/internal/core/domain"
	"github.com/sirpyerre/people-registry/internal/core/ports"
)

// NoCityLabel is the report bucket for people with a blank city. It is a
// presentation label only and is never written back to the person.
const NoCityLabel = "NO CITY"

// PersonService implements registry operations over a person repository.
type PersonService struct {
	repo     ports.PersonRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewPersonService(repo ports.PersonRepository, logger zerolog.Logger) *PersonService {
	return &PersonService{repo: repo, validate: newPersonValidator(), logger: logger}
}

func (s *PersonService) Load(ctx context.Context) error {
	if err := s.repo.Load(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to load people")
		return err
	}
	return nil
}

func (s *PersonService) Save(ctx context.Context) error {
	if err := s.repo.Save(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to save people")
		return err
	}
	s.logger.Info().Msg("people saved")
	return nil
}

func (s *PersonService) GetAll(ctx context.Context) ([]domain.Person, error) {
	return s.repo.All(ctx)
}

func (s *PersonService) GetByID(ctx context.Context, id int) (*domain.Person, error) {
	return s.repo.FindByID(ctx, id)
}

// TryAdd validates the candidate and appends it to the registry. Rules run
// in a fixed order — positive id, unique id, first name, last name, phone,
// balance — and the first violation is returned as the reason, leaving the
// registry unchanged.
func (s *PersonService) TryAdd(ctx context.Context, in ports.PersonInput) error {
	if in.ID <= 0 {
		return &domain.ValidationError{Reason: "id must be a positive integer"}
	}
	if _, err := s.repo.FindByID(ctx, in.ID); err == nil {
		return &domain.ValidationError{Reason: fmt.Sprintf("a person with id %d already exists", in.ID)}
	} else if !errors.Is(err, domain.ErrPersonNotFound) {
		return err
	}
	if err := checkFields(s.validate, personFields{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Balance:   in.Balance,
	}); err != nil {
		return err
	}

	p := domain.Person{
		ID:        in.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		City:      in.City,
		Balance:   in.Balance,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		s.logger.Error().Err(err).Int("id", in.ID).Msg("failed to add person")
		return err
	}

	s.logger.Info().Int("id", p.ID).Str("city", p.City).Msg("person added")
	return nil
}

// TryUpdate validates the proposed field set and, only when every rule
// passes, replaces the stored person in place. On failure the stored person
// is untouched and the proposal is discarded.
func (s *PersonService) TryUpdate(ctx context.Context, id int, upd ports.PersonUpdate) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := checkFields(s.validate, personFields{
		FirstName: upd.FirstName,
		LastName:  upd.LastName,
		Phone:     upd.Phone,
		Balance:   upd.Balance,
	}); err != nil {
		return err
	}

	next := *current
	next.FirstName = upd.FirstName
	next.LastName = upd.LastName
	next.Phone = upd.Phone
	next.City = upd.City
	next.Balance = upd.Balance
	if err := s.repo.Replace(ctx, next); err != nil {
		s.logger.Error().Err(err).Int("id", id).Msg("failed to update person")
		return err
	}

	s.logger.Info().Int("id", id).Msg("person updated")
	return nil
}

// Delete removes the person with the given id; absent ids are a no-op.
func (s *PersonService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int("id", id).Msg("person deleted")
	return nil
}

// GroupedByCity buckets the registry by city, ordered by city name ascending
// (ordinal). A blank city is reported under NoCityLabel. People within a
// group keep their registry order.
func (s *PersonService) GroupedByCity(ctx context.Context) ([]ports.CityGroup, error) {
	people, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(people))
	groups := make([]ports.CityGroup, 0)
	for _, p := range people {
		city := strings.TrimSpace(p.City)
		if city == "" {
			city = NoCityLabel
		}
		i, ok := index[city]
		if !ok {
			i = len(groups)
			index[city] = i
			groups = append(groups, ports.CityGroup{City: city})
		}
		groups[i].People = append(groups[i].People, p)
		groups[i].Total += p.Balance
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].City < groups[j].City })
	return groups, nil
}

// TotalBalance sums every balance in the registry; 0 for an empty registry.
func (s *PersonService) TotalBalance(ctx context.Context) (float64, error) {
	people, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range people {
		total += p.Balance
	}
	return total, nil
}
