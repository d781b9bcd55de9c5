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

const userFieldCount = 3

// UserRepository implements ports.UserRepository over a delimited text file
// with the line format username,password,isActive.
type UserRepository struct {
	path   string
	users  []domain.User
	logger zerolog.Logger
}

func NewUserRepository(path string, logger zerolog.Logger) *UserRepository {
	return &UserRepository{path: path, logger: logger}
}

// Load replaces the in-memory collection with the file contents. A missing
// file starts the store empty.
func (r *UserRepository) Load(_ context.Context) error {
	r.users = r.users[:0]

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load users: %w", err)
	}

	skipped := 0
	for _, line := range readLines(data) {
		u, ok := parseUser(line)
		if !ok {
			skipped++
			continue
		}
		r.users = append(r.users, u)
	}
	if skipped > 0 {
		r.logger.Debug().Int("skipped", skipped).Str("path", r.path).Msg("malformed user lines dropped")
	}
	return nil
}

// Save rewrites the whole file; the active flag is serialized as lowercase
// true/false.
func (r *UserRepository) Save(_ context.Context) error {
	var b strings.Builder
	for _, u := range r.users {
		b.WriteString(strings.Join([]string{u.Username, u.Password, strconv.FormatBool(u.IsActive)}, fieldDelimiter))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(r.path, []byte(b.String()), fileMode); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// All returns a copy of the collection.
func (r *UserRepository) All(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// FindByUsername matches case-insensitively; the first match wins when the
// file carries duplicates.
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// SetActive flips the active flag on the first case-insensitive match.
func (r *UserRepository) SetActive(_ context.Context, username string, active bool) error {
	for i := range r.users {
		if strings.EqualFold(r.users[i].Username, username) {
			r.users[i].IsActive = active
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func parseUser(line string) (domain.User, bool) {
	parts := strings.Split(line, fieldDelimiter)
	if len(parts) < userFieldCount {
		return domain.User{}, false
	}
	active, err := strconv.ParseBool(strings.TrimSpace(parts[2]))
	if err != nil {
		// Permissive by contract: an unreadable flag keeps the user active.
		active = true
	}
	return domain.User{
		Username: strings.TrimSpace(parts[0]),
		Password: strings.TrimSpace(parts[1]),
		IsActive: active,
	}, true
}
