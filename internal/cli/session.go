// Package cli implements the interactive console session: the login
// sequence and the numbered menu over the registry services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirpyerre/people-registry/internal/core/domain"
	"github.com/sirpyerre/people-registry/internal/core/ports"
)

// Options tunes the session. Zero values fall back to stdin/stdout and no
// retry delay.
type Options struct {
	// RetryDelay is the pause shown to the operator between failed login
	// attempts.
	RetryDelay time.Duration
	// In and Out override the terminal streams, used by tests.
	In  io.Reader
	Out io.Writer
}

// Session drives one operator through login and the registry menu.
type Session struct {
	people ports.PersonService
	users  ports.UserRepository
	auth   ports.AuthService
	audit  ports.AuditLog

	in         *bufio.Reader
	rawIn      io.Reader
	out        io.Writer
	retryDelay time.Duration

	user *domain.User
}

func NewSession(people ports.PersonService, users ports.UserRepository, auth ports.AuthService, audit ports.AuditLog, opts Options) *Session {
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Session{
		people:     people,
		users:      users,
		auth:       auth,
		audit:      audit,
		in:         bufio.NewReader(in),
		rawIn:      in,
		out:        out,
		retryDelay: opts.RetryDelay,
	}
}

// Run authenticates the operator and, on success, serves the menu until
// exit. A denied login is a normal outcome: the session prints the refusal
// and returns nil without ever exposing a record operation.
func (s *Session) Run(ctx context.Context) error {
	user, err := s.auth.AttemptLogin(ctx, s)
	if err != nil {
		if errors.Is(err, domain.ErrLoginDenied) {
			fmt.Fprintln(s.out, "User blocked after failed login attempts.")
			fmt.Fprintln(s.out, "Access denied. Contact the administrator to unblock.")
			return nil
		}
		return err
	}
	s.user = user

	fmt.Fprintf(s.out, "\nWelcome, %s.\n", user.Username)
	return s.menuLoop(ctx)
}

// PromptCredentials makes Session the ports.CredentialPrompter for its own
// login: the core owns the attempt budget, the session owns the prompts and
// the retry delay.
func (s *Session) PromptCredentials(_ context.Context, attempt, remaining int) (ports.Credentials, error) {
	if attempt > 1 {
		fmt.Fprintf(s.out, "Wrong credentials. Attempts remaining: %d\n", remaining)
		time.Sleep(s.retryDelay)
	}

	fmt.Fprintln(s.out, "=== LOGIN ===")
	username, err := s.promptLine("Username: ")
	if err != nil {
		return ports.Credentials{}, err
	}
	password, err := s.promptPassword("Password: ")
	if err != nil {
		return ports.Credentials{}, err
	}
	return ports.Credentials{Username: username, Password: password}, nil
}

func (s *Session) menuLoop(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, "====================================")
		fmt.Fprintln(s.out, "1. List people")
		fmt.Fprintln(s.out, "2. Add person")
		fmt.Fprintln(s.out, "3. Edit person")
		fmt.Fprintln(s.out, "4. Delete person")
		fmt.Fprintln(s.out, "5. Save changes")
		fmt.Fprintln(s.out, "6. Report by city")
		fmt.Fprintln(s.out, "0. Exit")
		fmt.Fprintln(s.out, "====================================")

		option, err := s.promptLine("Select an option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch option {
		case "1":
			err = s.listPeople(ctx)
		case "2":
			err = s.addPerson(ctx)
		case "3":
			err = s.editPerson(ctx)
		case "4":
			err = s.deletePerson(ctx)
		case "5":
			err = s.saveChanges(ctx)
		case "6":
			err = s.reportByCity(ctx)
		case "0":
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option.")
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out)
	}
}
