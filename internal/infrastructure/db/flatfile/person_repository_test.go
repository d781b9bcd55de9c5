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

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func newPersonRepo(t *testing.T, contents string) *PersonRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.txt")
	if contents != "" {
		writeFile(t, path, contents)
	}
	return NewPersonRepository(path, zerolog.Nop())
}

func TestPersonRepository_Load_SkipsMalformedLines(t *testing.T) {
	repo := newPersonRepo(t, "1,Ana,Lopez,5551234,Bogota,1000.50\n"+
		"2,OnlyTwo,Fields\n"+
		"x,Bad,Id,5551234,Cali,10\n"+
		"3,Bad,Balance,5551234,Cali,abc\n"+
		"   \n"+
		"4,Ben,Diaz,5555678,Cali,20\n")

	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	people, _ := repo.All(context.Background())
	if len(people) != 2 {
		t.Fatalf("got %d people, want 2: %+v", len(people), people)
	}

	want := domain.Person{ID: 1, FirstName: "Ana", LastName: "Lopez", Phone: "5551234", City: "Bogota", Balance: 1000.50}
	if people[0] != want {
		t.Fatalf("first person = %+v, want %+v", people[0], want)
	}
	if people[1].ID != 4 {
		t.Fatalf("insertion order lost: second person is id %d", people[1].ID)
	}
}

func TestPersonRepository_Load_MissingFileStartsEmpty(t *testing.T) {
	repo := NewPersonRepository(filepath.Join(t.TempDir(), "absent.txt"), zerolog.Nop())

	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load of missing file returned error: %v", err)
	}
	people, _ := repo.All(context.Background())
	if len(people) != 0 {
		t.Fatalf("expected empty collection, got %d", len(people))
	}
}

func TestPersonRepository_Load_ReplacesPreviousContents(t *testing.T) {
	repo := newPersonRepo(t, "1,Ana,Lopez,5551234,Bogota,10\n")

	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	people, _ := repo.All(context.Background())
	if len(people) != 1 {
		t.Fatalf("reload duplicated records: %d people", len(people))
	}
}

func TestPersonRepository_SaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.txt")
	repo := NewPersonRepository(path, zerolog.Nop())

	seed := []domain.Person{
		{ID: 1, FirstName: "Ana", LastName: "Lopez", Phone: "5551234", City: "Bogota", Balance: 1000.5},
		{ID: 2, FirstName: "Ben", LastName: "Diaz", Phone: "(57) 555-5678", City: "Santa Marta", Balance: 0.25},
		{ID: 3, FirstName: "Cruz", LastName: "Mora", Phone: "5559999", City: "", Balance: 42},
	}
	for _, p := range seed {
		if err := repo.Insert(context.Background(), p); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := repo.Save(context.Background()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded := NewPersonRepository(path, zerolog.Nop())
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	people, _ := reloaded.All(context.Background())
	if len(people) != len(seed) {
		t.Fatalf("round trip lost records: %d of %d", len(people), len(seed))
	}
	for i := range seed {
		if people[i] != seed[i] {
			t.Fatalf("person %d = %+v, want %+v", i, people[i], seed[i])
		}
	}
}

func TestPersonRepository_Save_BalanceFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.txt")
	repo := NewPersonRepository(path, zerolog.Nop())

	_ = repo.Insert(context.Background(), domain.Person{ID: 1, FirstName: "Ana", LastName: "Lopez", Phone: "5551234", City: "Bogota", Balance: 1234567.5})
	if err := repo.Save(context.Background()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got, want := string(data), "1,Ana,Lopez,5551234,Bogota,1234567.5\n"; got != want {
		t.Fatalf("file contents = %q, want %q", got, want)
	}
}

func TestPersonRepository_Insert_RejectsDuplicateID(t *testing.T) {
	repo := newPersonRepo(t, "")
	p := domain.Person{ID: 1, FirstName: "Ana", LastName: "Lopez", Phone: "5551234", Balance: 1}

	if err := repo.Insert(context.Background(), p); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := repo.Insert(context.Background(), p); !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestPersonRepository_Replace_PreservesPosition(t *testing.T) {
	repo := newPersonRepo(t, "")
	for i := 1; i <= 3; i++ {
		_ = repo.Insert(context.Background(), domain.Person{ID: i, FirstName: "P", LastName: "Q", Phone: "5550000", Balance: 1})
	}

	if err := repo.Replace(context.Background(), domain.Person{ID: 2, FirstName: "New", LastName: "Name", Phone: "5551111", Balance: 2}); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}

	people, _ := repo.All(context.Background())
	if people[1].ID != 2 || people[1].FirstName != "New" {
		t.Fatalf("replace moved or missed the record: %+v", people)
	}
}

func TestPersonRepository_Remove(t *testing.T) {
	repo := newPersonRepo(t, "")
	for i := 1; i <= 3; i++ {
		_ = repo.Insert(context.Background(), domain.Person{ID: i, FirstName: "P", LastName: "Q", Phone: "5550000", Balance: 1})
	}

	if err := repo.Remove(context.Background(), 2); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	people, _ := repo.All(context.Background())
	if len(people) != 2 || people[0].ID != 1 || people[1].ID != 3 {
		t.Fatalf("unexpected collection after remove: %+v", people)
	}

	// Absent id is a no-op.
	if err := repo.Remove(context.Background(), 99); err != nil {
		t.Fatalf("Remove of absent id returned error: %v", err)
	}
}

func TestPersonRepository_All_ReturnsCopy(t *testing.T) {
	repo := newPersonRepo(t, "")
	_ = repo.Insert(context.Background(), domain.Person{ID: 1, FirstName: "Ana", LastName: "Lopez", Phone: "5551234", Balance: 1})

	people, _ := repo.All(context.Background())
	people[0].FirstName = "Mutated"

	again, _ := repo.All(context.Background())
	if again[0].FirstName != "Ana" {
		t.Fatalf("caller mutation leaked into the repository")
	}
}

func TestPersonRepository_FindByID_ReturnsCopy(t *testing.T) {
	repo := newPersonRepo(t, "")
	_ = repo.Insert(context.Background(), domain.Person{ID: 1, FirstName: "Ana", LastName: "Lopez", Phone: "5551234", Balance: 1})

	p, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	p.FirstName = "Mutated"

	again, _ := repo.FindByID(context.Background(), 1)
	if again.FirstName != "Ana" {
		t.Fatalf("caller mutation leaked into the repository")
	}
}
