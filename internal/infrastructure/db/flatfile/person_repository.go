package flatfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/people-registry/internal/core/domain"
)

const personFieldCount = 6

// PersonRepository implements ports.PersonRepository over a delimited text
// file with the line format id,firstName,lastName,phone,city,balance.
type PersonRepository struct {
	path   string
	people []domain.Person
	logger zerolog.Logger
}

func NewPersonRepository(path string, logger zerolog.Logger) *PersonRepository {
	return &PersonRepository{path: path, logger: logger}
}

// Load replaces the in-memory collection with the file contents, preserving
// line order. A missing file starts the registry empty.
func (r *PersonRepository) Load(_ context.Context) error {
	r.people = r.people[:0]

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load people: %w", err)
	}

	skipped := 0
	for _, line := range readLines(data) {
		p, ok := parsePerson(line)
		if !ok {
			skipped++
			continue
		}
		r.people = append(r.people, p)
	}
	if skipped > 0 {
		r.logger.Debug().Int("skipped", skipped).Str("path", r.path).Msg("malformed person lines dropped")
	}
	return nil
}

// Save rewrites the whole file from the in-memory collection. Balances are
// serialized with a dot separator and no grouping, independent of locale.
func (r *PersonRepository) Save(_ context.Context) error {
	var b strings.Builder
	for _, p := range r.people {
		b.WriteString(formatPerson(p))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(r.path, []byte(b.String()), fileMode); err != nil {
		return fmt.Errorf("save people: %w", err)
	}
	return nil
}

// All returns a copy of the collection; mutating it does not affect the
// repository.
func (r *PersonRepository) All(_ context.Context) ([]domain.Person, error) {
	out := make([]domain.Person, len(r.people))
	copy(out, r.people)
	return out, nil
}

func (r *PersonRepository) FindByID(_ context.Context, id int) (*domain.Person, error) {
	for _, p := range r.people {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrPersonNotFound
}

func (r *PersonRepository) Insert(_ context.Context, p domain.Person) error {
	for _, existing := range r.people {
		if existing.ID == p.ID {
			return domain.ErrDuplicateID
		}
	}
	r.people = append(r.people, p)
	return nil
}

// Replace swaps the stored person with the same id, keeping its position.
func (r *PersonRepository) Replace(_ context.Context, p domain.Person) error {
	for i := range r.people {
		if r.people[i].ID == p.ID {
			r.people[i] = p
			return nil
		}
	}
	return domain.ErrPersonNotFound
}

// Remove deletes the first person with the given id; absent ids are a no-op.
func (r *PersonRepository) Remove(_ context.Context, id int) error {
	for i := range r.people {
		if r.people[i].ID == id {
			r.people = append(r.people[:i], r.people[i+1:]...)
			return nil
		}
	}
	return nil
}

func parsePerson(line string) (domain.Person, bool) {
	parts := strings.Split(line, fieldDelimiter)
	if len(parts) < personFieldCount {
		return domain.Person{}, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Person{}, false
	}
	balance, err := strconv.ParseFloat(strings.TrimSpace(parts[5]), 64)
	if err != nil {
		return domain.Person{}, false
	}
	return domain.Person{
		ID:        id,
		FirstName: strings.TrimSpace(parts[1]),
		LastName:  strings.TrimSpace(parts[2]),
		Phone:     strings.TrimSpace(parts[3]),
		City:      strings.TrimSpace(parts[4]),
		Balance:   balance,
	}, true
}

func formatPerson(p domain.Person) string {
	return strings.Join([]string{
		strconv.Itoa(p.ID),
		p.FirstName,
		p.LastName,
		p.Phone,
		p.City,
		strconv.FormatFloat(p.Balance, 'f', -1, 64),
	}, fieldDelimiter)
}
