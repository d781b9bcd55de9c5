package flatfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/people-registry/internal/core/domain"
)

func newUserRepo(t *testing.T, contents string) *UserRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.txt")
	if contents != "" {
		writeFile(t, path, contents)
	}
	return NewUserRepository(path, zerolog.Nop())
}

func TestUserRepository_Load(t *testing.T) {
	repo := newUserRepo(t, "admin,1234,true\n"+
		"ana,pass,false\n"+
		"short,line\n")

	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	users, _ := repo.All(context.Background())
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2: %+v", len(users), users)
	}
	if users[0] != (domain.User{Username: "admin", Password: "1234", IsActive: true}) {
		t.Fatalf("first user = %+v", users[0])
	}
	if users[1].IsActive {
		t.Fatalf("expected ana to be inactive")
	}
}

func TestUserRepository_Load_UnparsableFlagDefaultsActive(t *testing.T) {
	// Permissive parsing is the documented contract, not an accident: a flag
	// the file author mangled must not lock the user out.
	repo := newUserRepo(t, "bob,pw,whatever\n")

	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	user, err := repo.FindByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("FindByUsername returned error: %v", err)
	}
	if !user.IsActive {
		t.Fatalf("unparsable flag did not default to active")
	}
}

func TestUserRepository_Load_MissingFileStartsEmpty(t *testing.T) {
	repo := NewUserRepository(filepath.Join(t.TempDir(), "absent.txt"), zerolog.Nop())

	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load of missing file returned error: %v", err)
	}
	users, _ := repo.All(context.Background())
	if len(users) != 0 {
		t.Fatalf("expected empty store, got %d users", len(users))
	}
}

func TestUserRepository_Save_LowercaseFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	repo := NewUserRepository(path, zerolog.Nop())
	writeFile(t, path, "ana,pass,True\nbob,pw,true\n")

	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := repo.SetActive(context.Background(), "bob", false); err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}
	if err := repo.Save(context.Background()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got, want := string(data), "ana,pass,true\nbob,pw,false\n"; got != want {
		t.Fatalf("file contents = %q, want %q", got, want)
	}
}

func TestUserRepository_FindByUsername_CaseInsensitiveFirstMatch(t *testing.T) {
	repo := newUserRepo(t, "Ana,first,true\nana,second,true\n")

	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	user, err := repo.FindByUsername(context.Background(), "ANA")
	if err != nil {
		t.Fatalf("FindByUsername returned error: %v", err)
	}
	if user.Password != "first" {
		t.Fatalf("expected first match to win, got %+v", user)
	}
}

func TestUserRepository_SetActive_UnknownUser(t *testing.T) {
	repo := newUserRepo(t, "")

	if err := repo.SetActive(context.Background(), "ghost", false); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
