package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirpyerre/people-registry/internal/core/domain"
	"github.com/sirpyerre/people-registry/internal/core/ports"
)

func (s *Session) listPeople(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== PEOPLE ===")

	people, err := s.people.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(people) == 0 {
		fmt.Fprintln(s.out, "No people registered.")
		return nil
	}

	for _, p := range people {
		s.printPerson(p)
	}
	return nil
}

func (s *Session) printPerson(p domain.Person) {
	fmt.Fprintf(s.out, "ID: %d\n", p.ID)
	fmt.Fprintf(s.out, "Name: %s %s\n", p.FirstName, p.LastName)
	fmt.Fprintf(s.out, "Phone: %s\n", p.Phone)
	fmt.Fprintf(s.out, "City: %s\n", p.City)
	fmt.Fprintf(s.out, "Balance: %.2f\n", p.Balance)
	fmt.Fprintln(s.out, "-----------------------------------")
}

func (s *Session) addPerson(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== ADD PERSON ===")

	id, err := s.promptInt("ID (positive integer): ")
	if err != nil {
		return err
	}
	first, err := s.promptLine("First name: ")
	if err != nil {
		return err
	}
	last, err := s.promptLine("Last name: ")
	if err != nil {
		return err
	}
	phone, err := s.promptLine("Phone: ")
	if err != nil {
		return err
	}
	city, err := s.promptLine("City: ")
	if err != nil {
		return err
	}
	balanceText, err := s.promptLine("Balance: ")
	if err != nil {
		return err
	}
	balance, convErr := strconv.ParseFloat(balanceText, 64)
	if convErr != nil {
		fmt.Fprintln(s.out, "Balance must be a valid number.")
		return nil
	}

	in := ports.PersonInput{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Phone:     phone,
		City:      city,
		Balance:   balance,
	}
	if err := s.people.TryAdd(ctx, in); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(s.out, "Could not add person: %s\n", ve.Reason)
			return nil
		}
		return err
	}

	if err := s.audit.Record(s.user.Username, "ADD_PERSON", fmt.Sprintf("ID=%d", id)); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Person added.")
	return nil
}

func (s *Session) editPerson(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== EDIT PERSON ===")

	idText, err := s.promptLine("ID of the person to edit: ")
	if err != nil {
		return err
	}
	id, convErr := strconv.Atoi(idText)
	if convErr != nil {
		fmt.Fprintln(s.out, "The ID must be a whole number.")
		return nil
	}

	current, err := s.people.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			fmt.Fprintf(s.out, "No person found with ID %d.\n", id)
			return nil
		}
		return err
	}

	fmt.Fprintf(s.out, "\nEditing: %s %s\n", current.FirstName, current.LastName)
	fmt.Fprintln(s.out, "Leave a field empty to keep its current value.")
	fmt.Fprintln(s.out)

	upd := ports.PersonUpdate{
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Phone:     current.Phone,
		City:      current.City,
		Balance:   current.Balance,
	}

	if input, err := s.promptLine(fmt.Sprintf("New first name (%s): ", current.FirstName)); err != nil {
		return err
	} else if input != "" {
		upd.FirstName = input
	}
	if input, err := s.promptLine(fmt.Sprintf("New last name (%s): ", current.LastName)); err != nil {
		return err
	} else if input != "" {
		upd.LastName = input
	}
	if input, err := s.promptLine(fmt.Sprintf("New phone (%s): ", current.Phone)); err != nil {
		return err
	} else if input != "" {
		upd.Phone = input
	}
	if input, err := s.promptLine(fmt.Sprintf("New city (%s): ", current.City)); err != nil {
		return err
	} else if input != "" {
		upd.City = input
	}
	if input, err := s.promptLine(fmt.Sprintf("New balance (%s): ", strconv.FormatFloat(current.Balance, 'f', -1, 64))); err != nil {
		return err
	} else if input != "" {
		if newBalance, convErr := strconv.ParseFloat(input, 64); convErr == nil {
			upd.Balance = newBalance
		} else {
			fmt.Fprintln(s.out, "Invalid balance; keeping the current value.")
		}
	}

	if err := s.people.TryUpdate(ctx, id, upd); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(s.out, "Could not update person: %s\n", ve.Reason)
			return nil
		}
		return err
	}

	if err := s.audit.Record(s.user.Username, "EDIT_PERSON", fmt.Sprintf("ID=%d", id)); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Person updated.")
	return nil
}

func (s *Session) deletePerson(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== DELETE PERSON ===")

	idText, err := s.promptLine("ID of the person to delete: ")
	if err != nil {
		return err
	}
	id, convErr := strconv.Atoi(idText)
	if convErr != nil {
		fmt.Fprintln(s.out, "The ID must be a whole number.")
		return nil
	}

	person, err := s.people.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			fmt.Fprintf(s.out, "No person found with ID %d.\n", id)
			return nil
		}
		return err
	}

	fmt.Fprintln(s.out, "\nThe following record was found:")
	s.printPerson(*person)

	confirm, err := s.promptLine("Delete this person? (y/N): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(s.out, "Cancelled. No changes were made.")
		return nil
	}

	if err := s.people.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.audit.Record(s.user.Username, "DELETE_PERSON", fmt.Sprintf("ID=%d", id)); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Person deleted.")
	return nil
}

// saveChanges persists both stores: people first, then credentials. A crash
// in between can leave the two files inconsistent with each other; each file
// individually is always fully rewritten.
func (s *Session) saveChanges(ctx context.Context) error {
	if err := s.people.Save(ctx); err != nil {
		return err
	}
	if err := s.users.Save(ctx); err != nil {
		return err
	}
	if err := s.audit.Record(s.user.Username, "SAVE", "OK"); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Changes saved.")
	return nil
}

func (s *Session) reportByCity(ctx context.Context) error {
	fmt.Fprintln(s.out, "=== REPORT BY CITY ===")
	fmt.Fprintln(s.out)

	groups, err := s.people.GroupedByCity(ctx)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Fprintln(s.out, "No people registered.")
		return nil
	}

	for _, g := range groups {
		fmt.Fprintf(s.out, "City: %s\n", g.City)
		fmt.Fprintln(s.out, "ID   First name     Last name      Balance")
		for _, p := range g.People {
			fmt.Fprintf(s.out, "%-4d %-14s %-14s %10.2f\n", p.ID, p.FirstName, p.LastName, p.Balance)
		}
		fmt.Fprintln(s.out, "=====")
		fmt.Fprintf(s.out, "Total %s: %.2f\n\n", g.City, g.Total)
	}

	grandTotal, err := s.people.TotalBalance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "=====")
	fmt.Fprintf(s.out, "Grand total: %.2f\n", grandTotal)

	return s.audit.Record(s.user.Username, "REPORT_BY_CITY",
		"TOTAL="+strconv.FormatFloat(grandTotal, 'f', -1, 64))
}
